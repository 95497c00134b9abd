package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/poiesic/ludex/ai"
	"github.com/poiesic/ludex/core"
	"github.com/poiesic/ludex/index"
	"github.com/poiesic/ludex/storage"
)

// Searcher executes catalog searches: structured filter search over the
// lexical index and semantic search over stored embeddings. Compilation and
// composition are pure; the only state here is the injected collaborators.
type Searcher struct {
	games    storage.GameRepository
	index    *index.Index
	embedder ai.Embedder
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	games storage.GameRepository,
	idx *index.Index,
	embedder ai.Embedder,
	opts ...Option,
) (*Searcher, error) {
	if games == nil {
		return nil, ErrGameRepositoryRequired
	}
	if idx == nil {
		return nil, ErrIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		games:    games,
		index:    idx,
		embedder: embedder,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search compiles the criteria, composes a single conjunctive query, and
// returns up to CatalogPageSize scored game snapshots, best match first.
// An all-absent criteria set returns the unfiltered catalog head, not an
// error.
func (s *Searcher) Search(ctx context.Context, criteria Criteria) ([]*core.GameHit, error) {
	req := Compose(criteria.Compile(), CatalogPageSize)

	hits, err := s.index.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.join(ctx, hits)
}

// SemanticSearch embeds the free-text query and returns up to ListPageSize
// games ranked by embedding similarity. Fails with core.ErrInvalidArgument
// on empty input before any model or index round trip.
func (s *Searcher) SemanticSearch(ctx context.Context, text string) ([]*core.GameHit, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: semantic search text is empty", core.ErrInvalidArgument)
	}

	vector, err := s.embedder.EmbedText(ctx, text)
	if err != nil {
		s.logger.Error("error generating embedding for query", "err", err)
		return nil, err
	}

	return s.games.FindSimilar(ctx, vector, 0, ListPageSize)
}

// GameByID fetches a single game snapshot; core.ErrNotFound propagates when
// the id is unknown, never a default snapshot.
func (s *Searcher) GameByID(ctx context.Context, id int) (*core.Game, error) {
	game, err := s.games.GetGame(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("game %d: %w", id, err)
	}
	return game, nil
}

// GameByName finds the best-matching game for a name, using the same
// auto-fuzzy matching as catalog search and taking the top-scored hit.
// With overlapping names the winner is whichever the engine scores highest,
// so callers needing determinism should prefer GameByID.
func (s *Searcher) GameByName(ctx context.Context, name string) (*core.Game, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is empty", core.ErrInvalidArgument)
	}

	req := Compose([]query.Query{fuzzyMatch("name", name)}, 1)
	hits, err := s.index.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, fmt.Errorf("game %q: %w", name, core.ErrNotFound)
	}

	return s.games.GetGame(ctx, hits[0].GameId)
}

// join resolves index hits to full game snapshots, preserving score order.
// Hits whose game record has vanished from the store are skipped.
func (s *Searcher) join(ctx context.Context, hits []index.Hit) ([]*core.GameHit, error) {
	results := make([]*core.GameHit, 0, len(hits))
	for _, hit := range hits {
		game, err := s.games.GetGame(ctx, hit.GameId)
		if err != nil {
			s.logger.Warn("indexed game missing from store", "gameID", hit.GameId, "err", err)
			continue
		}
		results = append(results, &core.GameHit{Game: game, Score: hit.Score})
	}
	return results, nil
}
