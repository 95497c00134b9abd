package ingest

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/poiesic/ludex/ai/mock"
	"github.com/poiesic/ludex/core"
	"github.com/poiesic/ludex/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnricher_EnrichAll(t *testing.T) {
	games, pops, reviews, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()
	defer games.Close()
	defer pops.Close()
	defer reviews.Close()

	ctx := context.Background()
	require.NoError(t, games.PutGames(ctx,
		&core.Game{Id: 1, Name: "A", Description: "first description"},
		&core.Game{Id: 2, Name: "B", Description: "second description"},
		&core.Game{Id: 3, Name: "C", Description: "already has vector", Vector: []float32{0.5}},
		&core.Game{Id: 4, Name: "D"}, // no description, nothing to embed
	))

	enricher, err := NewEnricher(games, mock.NewMockEmbedder(), WithPoolSize(2))
	require.NoError(t, err)
	defer enricher.Release()

	enriched, err := enricher.EnrichAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, enriched)

	for _, id := range []int{1, 2} {
		game, err := games.GetGame(ctx, id)
		require.NoError(t, err)
		assert.Len(t, game.Vector, 384)
	}

	// The pre-vectored game keeps its vector untouched.
	game, err := games.GetGame(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5}, game.Vector)

	game, err = games.GetGame(ctx, 4)
	require.NoError(t, err)
	assert.Empty(t, game.Vector)

	// A second pass finds nothing left to do.
	enriched, err = enricher.EnrichAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, enriched)
}

func TestEnricher_EnrichAll_EmbedFailuresAreSkipped(t *testing.T) {
	games, pops, reviews, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()
	defer games.Close()
	defer pops.Close()
	defer reviews.Close()

	ctx := context.Background()
	require.NoError(t, games.PutGames(ctx,
		&core.Game{Id: 1, Name: "A", Description: "fails"},
		&core.Game{Id: 2, Name: "B", Description: "succeeds"},
	))

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		if text == "fails" {
			return nil, assert.AnError
		}
		return []float32{0.1, 0.2}, nil
	}

	enricher, err := NewEnricher(games, embedder, WithPoolSize(1), WithMaxAttempts(1))
	require.NoError(t, err)
	defer enricher.Release()

	enriched, err := enricher.EnrichAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, enriched)

	game, err := games.GetGame(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, game.Vector)

	game, err = games.GetGame(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2}, game.Vector)
}

func TestEnricher_EnrichAll_TransientFailuresAreRetried(t *testing.T) {
	games, pops, reviews, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()
	defer games.Close()
	defer pops.Close()
	defer reviews.Close()

	ctx := context.Background()
	require.NoError(t, games.PutGames(ctx,
		&core.Game{Id: 1, Name: "A", Description: "flaky service"},
	))

	// Fail twice, then succeed: the third attempt must land the vector.
	var calls atomic.Int32
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		if calls.Add(1) < 3 {
			return nil, assert.AnError
		}
		return []float32{0.7, 0.3}, nil
	}

	enricher, err := NewEnricher(games, embedder,
		WithPoolSize(1),
		WithMaxAttempts(3),
		WithRetryDelay(time.Millisecond),
	)
	require.NoError(t, err)
	defer enricher.Release()

	enriched, err := enricher.EnrichAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, enriched)
	assert.Equal(t, int32(3), calls.Load())

	game, err := games.GetGame(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.7, 0.3}, game.Vector)
}
