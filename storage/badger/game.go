package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/ludex/core"
	"github.com/poiesic/ludex/storage"
)

// GameRepository implements storage.GameRepository for BadgerDB.
type GameRepository struct {
	backend *Backend
}

var _ storage.GameRepository = (*GameRepository)(nil)

// NewGameRepository creates a new GameRepository.
func NewGameRepository(backend *Backend) (*GameRepository, error) {
	return &GameRepository{
		backend: backend,
	}, nil
}

// Close releases resources. GameRepository has no resources to release.
func (r *GameRepository) Close() error {
	return nil
}

// FindSimilar delegates to the backend.
func (r *GameRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.GameHit, error) {
	return r.backend.FindSimilar(ctx, vector, minSimilarity, limit)
}

// PutGames stores one or more game records, keyed by their ingestion id.
func (r *GameRepository) PutGames(ctx context.Context, games ...*core.Game) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC()
		for _, game := range games {
			key := makeGameKey(game.Id)

			old, err := r.readGame(tx, key)
			if err != nil {
				return err
			}
			if old != nil {
				game.InsertedAt = old.InsertedAt
			} else {
				game.InsertedAt = now
			}
			game.UpdatedAt = now

			if err := tx.Set(key, storage.MarshalGame(game)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetGame retrieves a single game by id.
func (r *GameRepository) GetGame(ctx context.Context, id int) (*core.Game, error) {
	var result *core.Game
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readGame(tx, makeGameKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return core.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetGames retrieves multiple games by their ids. Missing ids are skipped.
func (r *GameRepository) GetGames(ctx context.Context, ids ...int) ([]*core.Game, error) {
	var result []*core.Game
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			game, err := r.readGame(tx, makeGameKey(id))
			if err != nil {
				return err
			}
			if game != nil {
				result = append(result, game)
			}
		}
		return nil
	}, false)
	return result, err
}

// AllGames returns every stored game. Keys share a common prefix, so the
// iteration order is the string order of decimal ids, not numeric; callers
// needing numeric order must sort.
func (r *GameRepository) AllGames(ctx context.Context) ([]*core.Game, error) {
	var results []*core.Game
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(gameRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var game *core.Game
			err := iter.Item().Value(func(val []byte) error {
				var err error
				game, err = storage.UnmarshalGame(val)
				return err
			})
			if err != nil {
				return err
			}
			if game != nil {
				results = append(results, game)
			}
		}
		return nil
	}, false)
	return results, err
}

// readGame reads a game within a transaction. Returns nil if absent.
func (r *GameRepository) readGame(tx *badger.Txn, key []byte) (*core.Game, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var game *core.Game
	err = item.Value(func(val []byte) error {
		var err error
		game, err = storage.UnmarshalGame(val)
		return err
	})
	return game, err
}
