// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ludex

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/poiesic/ludex/ai"
	"github.com/poiesic/ludex/ai/openai"
	"github.com/poiesic/ludex/core"
	"github.com/poiesic/ludex/index"
	"github.com/poiesic/ludex/ingest"
	"github.com/poiesic/ludex/popularity"
	"github.com/poiesic/ludex/recommend"
	"github.com/poiesic/ludex/review"
	"github.com/poiesic/ludex/search"
	"github.com/poiesic/ludex/storage"
	"github.com/poiesic/ludex/storage/badger"
)

// Catalog is the top-level façade over the game store, the lexical index,
// and the model services. It owns their lifecycles and exposes the catalog
// operations the transport layer serves.
type Catalog struct {
	backend  *badger.Backend
	games    storage.GameRepository
	pops     storage.PopularityRepository
	reviews  storage.ReviewRepository
	index    *index.Index
	provider ai.AIProvider

	searcher    *search.Searcher
	recommender *recommend.Recommender
	tracker     *popularity.Tracker
	aggregator  *review.Aggregator

	logger *slog.Logger
}

// Detail is the full detail view of one game: the record itself, games like
// it, its reviews, and the aggregate review sentiment (nil when unreviewed).
type Detail struct {
	Game    *core.Game
	Similar []*core.GameHit
	Reviews []*core.Review
	Summary *core.SentimentSummary
}

// CatalogOption configures a Catalog.
type CatalogOption func(*catalogOptions)

type catalogOptions struct {
	aiConfig         *ai.Config
	provider         ai.AIProvider
	excludeReference bool
}

// WithAIConfig sets the model service configuration used to build the
// default OpenAI-compatible provider. Ignored when WithProvider is given.
func WithAIConfig(cfg *ai.Config) CatalogOption {
	return func(o *catalogOptions) {
		o.aiConfig = cfg
	}
}

// WithProvider injects a pre-built AI provider instead of constructing one
// from config. The catalog takes ownership and closes it on Close.
func WithProvider(provider ai.AIProvider) CatalogOption {
	return func(o *catalogOptions) {
		o.provider = provider
	}
}

// WithExcludeReference makes similarity lists drop the reference game
// itself. Default is to keep it.
func WithExcludeReference() CatalogOption {
	return func(o *catalogOptions) {
		o.excludeReference = true
	}
}

// Open opens (creating if needed) a catalog rooted at dataDir. The game
// store and the lexical index live in subdirectories of it.
func Open(dataDir string, opts ...CatalogOption) (*Catalog, error) {
	options := applyOptions(opts)

	backend, err := badger.OpenBackend(filepath.Join(dataDir, "store"), false)
	if err != nil {
		return nil, err
	}

	ix, err := index.Open(filepath.Join(dataDir, "index"))
	if err != nil {
		backend.Close()
		return nil, err
	}

	return assemble(backend, ix, options)
}

// OpenMemory creates a fully in-memory catalog, used in tests.
func OpenMemory(opts ...CatalogOption) (*Catalog, error) {
	options := applyOptions(opts)

	backend, err := badger.OpenBackend("", true)
	if err != nil {
		return nil, err
	}

	ix, err := index.OpenMemory()
	if err != nil {
		backend.Close()
		return nil, err
	}

	return assemble(backend, ix, options)
}

func applyOptions(opts []CatalogOption) *catalogOptions {
	options := &catalogOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

func assemble(backend *badger.Backend, ix *index.Index, options *catalogOptions) (*Catalog, error) {
	games, err := badger.NewGameRepository(backend)
	if err != nil {
		ix.Close()
		backend.Close()
		return nil, err
	}

	pops, err := badger.NewPopularityRepository(backend)
	if err != nil {
		games.Close()
		ix.Close()
		backend.Close()
		return nil, err
	}

	reviews, err := badger.NewReviewRepository(backend)
	if err != nil {
		pops.Close()
		games.Close()
		ix.Close()
		backend.Close()
		return nil, err
	}

	closeAll := func() {
		reviews.Close()
		pops.Close()
		games.Close()
		ix.Close()
		backend.Close()
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			closeAll()
			return nil, err
		}
	}

	searcher, err := search.NewSearcher(games, ix, provider.Embedder())
	if err != nil {
		provider.Close()
		closeAll()
		return nil, err
	}

	recommendOpts := []recommend.Option{}
	if options.excludeReference {
		recommendOpts = append(recommendOpts, recommend.WithExcludeReference())
	}
	recommender, err := recommend.New(games, ix, recommendOpts...)
	if err != nil {
		provider.Close()
		closeAll()
		return nil, err
	}

	tracker, err := popularity.NewTracker(pops, games)
	if err != nil {
		provider.Close()
		closeAll()
		return nil, err
	}

	aggregator, err := review.NewAggregator(reviews, games, provider.SentimentAnalyzer())
	if err != nil {
		provider.Close()
		closeAll()
		return nil, err
	}

	return &Catalog{
		backend:     backend,
		games:       games,
		pops:        pops,
		reviews:     reviews,
		index:       ix,
		provider:    provider,
		searcher:    searcher,
		recommender: recommender,
		tracker:     tracker,
		aggregator:  aggregator,
		logger:      slog.Default(),
	}, nil
}

// Close releases the provider, repositories, index, and backend.
func (c *Catalog) Close() error {
	if err := c.provider.Close(); err != nil {
		c.logger.Error("error closing AI provider", "err", err)
	}

	if err := c.reviews.Close(); err != nil {
		c.logger.Error("error closing review repository", "err", err)
		return err
	}
	if err := c.pops.Close(); err != nil {
		c.logger.Error("error closing popularity repository", "err", err)
		return err
	}
	if err := c.games.Close(); err != nil {
		c.logger.Error("error closing game repository", "err", err)
		return err
	}
	if err := c.index.Close(); err != nil {
		c.logger.Error("error closing index", "err", err)
		return err
	}
	if err := c.backend.Close(); err != nil {
		c.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Search runs a filtered catalog search.
func (c *Catalog) Search(ctx context.Context, criteria search.Criteria) ([]*core.GameHit, error) {
	hits, err := c.searcher.Search(ctx, criteria)
	return hits, asBackendErr(err)
}

// SemanticSearch ranks games by embedding similarity to free text.
func (c *Catalog) SemanticSearch(ctx context.Context, text string) ([]*core.GameHit, error) {
	hits, err := c.searcher.SemanticSearch(ctx, text)
	return hits, asBackendErr(err)
}

// PopularSearches returns the most-looked-up games.
func (c *Catalog) PopularSearches(ctx context.Context) ([]*core.PopularGame, error) {
	popular, err := c.tracker.TopN(ctx, search.ListPageSize)
	return popular, asBackendErr(err)
}

// GameDetail resolves a game by name and assembles its detail view. The
// lookup is counted toward popularity; similar games, reviews, and the
// sentiment summary ride along.
func (c *Catalog) GameDetail(ctx context.Context, name string) (*Detail, error) {
	game, err := c.searcher.GameByName(ctx, name)
	if err != nil {
		return nil, asBackendErr(err)
	}

	c.tracker.RecordLookup(ctx, game.Id)

	similar, err := c.recommender.Recommend(ctx, game.Id)
	if err != nil {
		return nil, asBackendErr(err)
	}

	reviews, err := c.aggregator.Reviews(ctx, game.Id)
	if err != nil {
		return nil, asBackendErr(err)
	}

	summary, err := c.aggregator.Summarize(ctx, game.Id)
	if err != nil {
		return nil, asBackendErr(err)
	}

	return &Detail{
		Game:    game,
		Similar: similar,
		Reviews: reviews,
		Summary: summary,
	}, nil
}

// SubmitReview scores and stores a review for a game.
func (c *Catalog) SubmitReview(ctx context.Context, gameID int, text string) (*core.Review, error) {
	review, err := c.aggregator.AddReview(ctx, gameID, text)
	return review, asBackendErr(err)
}

// GameByID fetches a single game record.
func (c *Catalog) GameByID(ctx context.Context, id int) (*core.Game, error) {
	game, err := c.searcher.GameByID(ctx, id)
	return game, asBackendErr(err)
}

// SimilarGames returns games similar to the given reference game.
func (c *Catalog) SimilarGames(ctx context.Context, gameID int) ([]*core.GameHit, error) {
	hits, err := c.recommender.Recommend(ctx, gameID)
	return hits, asBackendErr(err)
}

// NewLoader creates a CSV loader bound to this catalog's store and index.
func (c *Catalog) NewLoader(opts ...ingest.LoaderOption) (*ingest.Loader, error) {
	return ingest.NewLoader(c.games, c.index, opts...)
}

// NewEnricher creates an embedding enricher bound to this catalog's store.
func (c *Catalog) NewEnricher(opts ...ingest.EnricherOption) (*ingest.Enricher, error) {
	return ingest.NewEnricher(c.games, c.provider.Embedder(), opts...)
}

// GameRepository exposes the underlying game store.
func (c *Catalog) GameRepository() storage.GameRepository {
	return c.games
}

// asBackendErr keeps the caller-facing error taxonomy tight: domain
// sentinels pass through untouched, anything else is a backend failure.
func asBackendErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, core.ErrNotFound) || errors.Is(err, core.ErrInvalidArgument) {
		return err
	}
	return fmt.Errorf("%w: %v", core.ErrBackendUnavailable, err)
}
