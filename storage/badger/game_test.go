package badger

import (
	"context"
	"testing"

	"github.com/poiesic/ludex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameRepository_PutAndGet(t *testing.T) {
	games, pops, reviews, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		reviews.Close()
		pops.Close()
		games.Close()
		backend.Close()
	}()

	ctx := context.Background()

	game := &core.Game{
		Id:          13,
		Name:        "Catan",
		Description: "Trade, build and settle.",
		MinPlayers:  3,
		MaxPlayers:  4,
		MinAge:      10,
		PlayingTime: 120,
		Categories:  []string{"Negotiation"},
		Mechanics:   []string{"Trading"},
	}
	require.NoError(t, games.PutGames(ctx, game))

	got, err := games.GetGame(ctx, 13)
	require.NoError(t, err)
	assert.Equal(t, "Catan", got.Name)
	assert.Equal(t, []string{"Negotiation"}, got.Categories)
	assert.False(t, got.InsertedAt.IsZero())

	t.Run("missing game returns ErrNotFound", func(t *testing.T) {
		_, err := games.GetGame(ctx, 9999)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("rewrite preserves InsertedAt", func(t *testing.T) {
		inserted := got.InsertedAt
		game.Description = "updated"
		require.NoError(t, games.PutGames(ctx, game))

		updated, err := games.GetGame(ctx, 13)
		require.NoError(t, err)
		assert.Equal(t, inserted, updated.InsertedAt)
		assert.Equal(t, "updated", updated.Description)
	})
}

func TestGameRepository_GetGamesSkipsMissing(t *testing.T) {
	games, pops, reviews, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		reviews.Close()
		pops.Close()
		games.Close()
		backend.Close()
	}()

	ctx := context.Background()
	require.NoError(t, games.PutGames(ctx,
		&core.Game{Id: 1, Name: "A"},
		&core.Game{Id: 2, Name: "B"},
	))

	got, err := games.GetGames(ctx, 1, 42, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, "B", got[1].Name)
}

func TestBackend_FindSimilar(t *testing.T) {
	games, pops, reviews, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		reviews.Close()
		pops.Close()
		games.Close()
		backend.Close()
	}()

	ctx := context.Background()
	require.NoError(t, games.PutGames(ctx,
		&core.Game{Id: 1, Name: "Aligned", Vector: []float32{1, 0, 0}},
		&core.Game{Id: 2, Name: "Near", Vector: []float32{0.8, 0.6, 0}},
		&core.Game{Id: 3, Name: "Orthogonal", Vector: []float32{0, 1, 0}},
		&core.Game{Id: 4, Name: "NoVector"},
	))

	hits, err := games.FindSimilar(ctx, []float32{1, 0, 0}, 0.5, 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, 1, hits[0].Game.Id)
	assert.Equal(t, 2, hits[1].Game.Id)
	assert.Greater(t, hits[0].Score, hits[1].Score)

	t.Run("limit truncates", func(t *testing.T) {
		hits, err := games.FindSimilar(ctx, []float32{1, 0, 0}, 0, 1)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, 1, hits[0].Game.Id)
	})

	t.Run("games without embedding are skipped", func(t *testing.T) {
		hits, err := games.FindSimilar(ctx, []float32{1, 0, 0}, -1, 10)
		require.NoError(t, err)
		for _, hit := range hits {
			assert.NotEqual(t, 4, hit.Game.Id)
		}
	})
}
