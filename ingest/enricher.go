package ingest

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/ludex/ai"
	"github.com/poiesic/ludex/core"
	"github.com/poiesic/ludex/storage"
)

// Enricher backfills description embeddings for stored games. Embedding is
// a separate pass from loading so the catalog is searchable immediately and
// semantic search lights up as vectors arrive.
type Enricher struct {
	games       storage.GameRepository
	embedder    ai.Embedder
	pool        *ants.Pool
	maxAttempts int
	retryDelay  time.Duration
	logger      *slog.Logger
}

// EnricherOption configures an Enricher.
type EnricherOption func(*Enricher) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) EnricherOption {
	return func(e *Enricher) error {
		if size < 1 {
			size = 1
		}

		if e.pool != nil {
			e.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		e.pool = pool
		return nil
	}
}

// WithMaxAttempts sets how many times one game's embedding is attempted
// before the game is skipped for the pass. Default is 3.
func WithMaxAttempts(attempts int) EnricherOption {
	return func(e *Enricher) error {
		if attempts < 1 {
			attempts = 1
		}
		e.maxAttempts = attempts
		return nil
	}
}

// WithRetryDelay sets the delay before the first retry of a failed
// embedding; the delay doubles on each further retry. Default is one second.
func WithRetryDelay(delay time.Duration) EnricherOption {
	return func(e *Enricher) error {
		if delay < 0 {
			delay = 0
		}
		e.retryDelay = delay
		return nil
	}
}

// WithEnricherLogger sets a custom logger.
// Default is slog.Default().
func WithEnricherLogger(logger *slog.Logger) EnricherOption {
	return func(e *Enricher) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEnricher creates a new embedding enricher.
func NewEnricher(games storage.GameRepository, embedder ai.Embedder, opts ...EnricherOption) (*Enricher, error) {
	if games == nil {
		return nil, ErrGameRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	e := &Enricher{
		games:       games,
		embedder:    embedder,
		pool:        pool,
		maxAttempts: 3,
		retryDelay:  time.Second,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			e.Release()
			return nil, err
		}
	}

	return e, nil
}

// EnrichAll embeds every game that has a description but no vector yet and
// writes the vectors back. Returns the number of games enriched. Each
// embedding gets a few attempts with growing delays; a game whose attempts
// are exhausted is logged and skipped, and the pass keeps going.
func (e *Enricher) EnrichAll(ctx context.Context) (int, error) {
	games, err := e.games.AllGames(ctx)
	if err != nil {
		return 0, err
	}

	pending := make([]*core.Game, 0, len(games))
	for _, game := range games {
		if len(game.Vector) == 0 && game.Description != "" {
			pending = append(pending, game)
		}
	}
	if len(pending) == 0 {
		return 0, nil
	}

	var wg sync.WaitGroup
	var enriched atomic.Int64
	for _, game := range pending {
		game := game
		wg.Add(1)
		err := e.pool.Submit(func() {
			defer wg.Done()

			vector, err := e.embedWithRetry(ctx, game.Description)
			if err != nil {
				e.logger.Error("failed to embed game description", "gameID", game.Id, "err", err)
				return
			}
			game.Vector = vector
			if err := e.games.PutGames(ctx, game); err != nil {
				e.logger.Error("failed to store game vector", "gameID", game.Id, "err", err)
				return
			}
			enriched.Add(1)
		})
		if err != nil {
			wg.Done()
			e.logger.Error("failed to submit embedding task", "gameID", game.Id, "err", err)
		}
	}
	wg.Wait()

	e.logger.Info("embedding pass complete",
		"pending", len(pending),
		"enriched", enriched.Load())
	return int(enriched.Load()), nil
}

// embedWithRetry attempts one embedding a bounded number of times, doubling
// the delay after each failure. Local embedding services drop requests under
// load; a transient failure should not leave a game unsearchable until the
// next full pass.
func (e *Enricher) embedWithRetry(ctx context.Context, text string) ([]float32, error) {
	delay := e.retryDelay

	var lastErr error
	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		vector, err := e.embedder.EmbedText(ctx, text)
		if err == nil {
			if attempt > 1 {
				e.logger.Debug("embedding succeeded after retry", "attempt", attempt)
			}
			return vector, nil
		}
		lastErr = err

		if attempt == e.maxAttempts {
			break
		}
		e.logger.Debug("embedding failed, will retry",
			"attempt", attempt, "maxAttempts", e.maxAttempts, "err", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return nil, lastErr
}

// Release releases the worker pool.
// The enricher should not be used after calling Release.
func (e *Enricher) Release() {
	if e.pool != nil {
		e.pool.Release()
	}
}
