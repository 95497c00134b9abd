package index

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/blevesearch/bleve/v2"
	"github.com/poiesic/ludex/core"
)

// Index wraps the bleve full-text index holding the searchable projection
// of every game. It executes structured queries and returns scored hits;
// joining hits back to full game records is the caller's concern.
type Index struct {
	idx    bleve.Index
	logger *slog.Logger
}

// Hit is one scored result from the index. Score is engine-defined,
// non-negative, higher is more relevant; exact tie order between equal
// scores is engine-dependent.
type Hit struct {
	GameId int
	Score  float64
}

// Option configures an Index.
type Option func(*Index) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Index) error {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger
		return nil
	}
}

// Open opens the bleve index at path, creating it with the game mapping if
// it doesn't exist yet.
func Open(path string, opts ...Option) (*Index, error) {
	idx, err := bleve.Open(path)
	if errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
		idx, err = bleve.New(path, buildIndexMapping())
	}
	if err != nil {
		return nil, err
	}
	return newIndex(idx, opts...)
}

// OpenMemory creates an in-memory index, used in tests.
func OpenMemory(opts ...Option) (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, err
	}
	return newIndex(idx, opts...)
}

func newIndex(idx bleve.Index, opts ...Option) (*Index, error) {
	ix := &Index{
		idx:    idx,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(ix); err != nil {
			idx.Close()
			return nil, err
		}
	}
	return ix, nil
}

// Close closes the underlying bleve index.
func (ix *Index) Close() error {
	return ix.idx.Close()
}

// DocID converts a game id to its index document id.
func DocID(id int) string {
	return strconv.Itoa(id)
}

// IndexGames (re)indexes the searchable projection of the given games.
func (ix *Index) IndexGames(ctx context.Context, games ...*core.Game) error {
	batch := ix.idx.NewBatch()
	for _, game := range games {
		doc := gameDoc{
			Name:        game.Name,
			Description: game.Description,
			MinPlayers:  game.MinPlayers,
			MaxPlayers:  game.MaxPlayers,
			MinAge:      game.MinAge,
			PlayingTime: game.PlayingTime,
			Categories:  game.Categories,
			Mechanics:   game.Mechanics,
		}
		if err := batch.Index(DocID(game.Id), doc); err != nil {
			return err
		}
	}
	return ix.idx.Batch(batch)
}

// Has reports whether a game is present in the index.
func (ix *Index) Has(ctx context.Context, id int) (bool, error) {
	q := bleve.NewDocIDQuery([]string{DocID(id)})
	req := bleve.NewSearchRequest(q)
	req.Size = 1

	res, err := ix.idx.SearchInContext(ctx, req)
	if err != nil {
		return false, err
	}
	return len(res.Hits) > 0, nil
}

// Execute runs a structured query against the index and returns scored
// hits in descending score order.
func (ix *Index) Execute(ctx context.Context, req *bleve.SearchRequest) ([]Hit, error) {
	res, err := ix.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, hit := range res.Hits {
		id, err := strconv.Atoi(hit.ID)
		if err != nil {
			// Should not happen: all doc ids are written by DocID.
			ix.logger.Warn("skipping hit with non-numeric doc id", "docID", hit.ID)
			continue
		}
		hits = append(hits, Hit{GameId: id, Score: hit.Score})
	}
	return hits, nil
}

// Count returns the number of indexed games.
func (ix *Index) Count() (uint64, error) {
	return ix.idx.DocCount()
}
