package badger

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/ludex/core"
	"github.com/poiesic/ludex/storage"
)

// Backoff window for increments that lose a transaction conflict. Conflicts
// happen when two writers hit the same game id at once; the counter is a hot
// key under load, so losing is the expected case and the increment retries
// until it lands.
const (
	incrementBaseDelay = 250 * time.Microsecond
	incrementMaxDelay  = 10 * time.Millisecond
)

// PopularityRepository implements storage.PopularityRepository for BadgerDB.
type PopularityRepository struct {
	backend *Backend
}

var _ storage.PopularityRepository = (*PopularityRepository)(nil)

// NewPopularityRepository creates a new PopularityRepository.
func NewPopularityRepository(backend *Backend) (*PopularityRepository, error) {
	return &PopularityRepository{
		backend: backend,
	}, nil
}

// Close releases resources. PopularityRepository has no resources to release.
func (r *PopularityRepository) Close() error {
	return nil
}

// IncrementLookup atomically increments the game's lookup counter, creating
// the record with Count=1 on first write. BadgerDB transactions are
// serializable: a conflicting concurrent increment aborts the commit with
// ErrConflict, and the read-modify-write retries with jittered backoff until
// it commits or the context ends, so no update is lost.
func (r *PopularityRepository) IncrementLookup(ctx context.Context, gameID int) error {
	key := makePopularityKey(gameID)
	delay := incrementBaseDelay

	for {
		err := r.backend.WithTx(func(tx *badger.Txn) error {
			record := &core.PopularityRecord{GameId: gameID}

			item, err := tx.Get(key)
			if err == nil {
				err = item.Value(func(val []byte) error {
					record, err = storage.UnmarshalPopularityRecord(val)
					return err
				})
				if err != nil {
					return err
				}
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}

			record.Count++
			record.LastSeen = time.Now().UTC()

			if err := tx.Set(key, storage.MarshalPopularityRecord(record)); err != nil {
				return err
			}
			return tx.Commit()
		}, true)

		if !errors.Is(err, badger.ErrConflict) {
			return err
		}

		jitter := time.Duration(rand.Int64N(int64(delay)))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay + jitter):
		}
		if delay < incrementMaxDelay {
			delay *= 2
		}
	}
}

// TopRecords returns popularity records ordered by count descending.
func (r *PopularityRepository) TopRecords(ctx context.Context, limit int) ([]*core.PopularityRecord, error) {
	var records []*core.PopularityRecord

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(popRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record *core.PopularityRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalPopularityRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			if record != nil {
				records = append(records, record)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(records, func(a, b *core.PopularityRecord) int {
		if a.Count != b.Count {
			if a.Count > b.Count {
				return -1
			}
			return 1
		}
		return a.GameId - b.GameId
	})

	if len(records) > limit {
		records = records[:limit]
	}

	return records, nil
}
