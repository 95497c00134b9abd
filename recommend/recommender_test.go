package recommend

import (
	"context"
	"testing"

	"github.com/poiesic/ludex/core"
	"github.com/poiesic/ludex/index"
	"github.com/poiesic/ludex/storage"
	"github.com/poiesic/ludex/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// similarityFixture holds a reference game (13), one genuine neighbor (14)
// sharing tags and numeric profile, one textual cousin with a different
// numeric profile (822), and one unrelated game (9209).
func similarityFixture() []*core.Game {
	return []*core.Game{
		{
			Id:          13,
			Name:        "Catan",
			Description: "Trade wood and sheep to settle an island",
			MinPlayers:  3,
			MaxPlayers:  4,
			MinAge:      10,
			PlayingTime: 120,
			Categories:  []string{"Negotiation", "Economic"},
			Mechanics:   []string{"Dice Rolling", "Trading"},
		},
		{
			Id:          14,
			Name:        "Catan Seafarers",
			Description: "Settle islands and trade across the sea",
			MinPlayers:  3,
			MaxPlayers:  4,
			MinAge:      10,
			PlayingTime: 120,
			Categories:  []string{"Negotiation", "Economic"},
			Mechanics:   []string{"Dice Rolling", "Trading"},
		},
		{
			Id:          822,
			Name:        "Quick Trade",
			Description: "Trade goods at the island market",
			MinPlayers:  2,
			MaxPlayers:  6,
			MinAge:      8,
			PlayingTime: 30,
			Categories:  []string{"Economic"},
			Mechanics:   []string{"Trading"},
		},
		{
			Id:          9209,
			Name:        "Ticket to Ride",
			Description: "Claim railway routes across the map",
			MinPlayers:  2,
			MaxPlayers:  5,
			MinAge:      8,
			PlayingTime: 60,
			Categories:  []string{"Trains"},
			Mechanics:   []string{"Set Collection"},
		},
	}
}

func newTestRecommender(t *testing.T, opts ...Option) (*Recommender, storage.GameRepository, func()) {
	t.Helper()

	games, pops, reviews, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)

	ix, err := index.OpenMemory()
	require.NoError(t, err)

	ctx := context.Background()
	fixture := similarityFixture()
	require.NoError(t, games.PutGames(ctx, fixture...))
	require.NoError(t, ix.IndexGames(ctx, fixture...))

	recommender, err := New(games, ix, opts...)
	require.NoError(t, err)

	cleanup := func() {
		ix.Close()
		reviews.Close()
		pops.Close()
		games.Close()
		backend.Close()
	}
	return recommender, games, cleanup
}

func TestNew_RequiredDependencies(t *testing.T) {
	games, pops, reviews, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()
	defer games.Close()
	defer pops.Close()
	defer reviews.Close()

	ix, err := index.OpenMemory()
	require.NoError(t, err)
	defer ix.Close()

	_, err = New(nil, ix)
	assert.ErrorIs(t, err, ErrGameRepositoryRequired)

	_, err = New(games, nil)
	assert.ErrorIs(t, err, ErrIndexRequired)
}

func TestRecommender_Recommend(t *testing.T) {
	ctx := context.Background()

	t.Run("requires textual overlap and exact numeric profile", func(t *testing.T) {
		recommender, _, cleanup := newTestRecommender(t)
		defer cleanup()

		hits, err := recommender.Recommend(ctx, 13)
		require.NoError(t, err)

		ids := make([]int, 0, len(hits))
		for _, hit := range hits {
			ids = append(ids, hit.Game.Id)
		}
		// Quick Trade overlaps textually but has a different player and
		// time profile; Ticket to Ride shares nothing. Only the reference
		// itself and Seafarers survive.
		assert.ElementsMatch(t, []int{13, 14}, ids)
	})

	t.Run("reference can be excluded", func(t *testing.T) {
		recommender, _, cleanup := newTestRecommender(t, WithExcludeReference())
		defer cleanup()

		hits, err := recommender.Recommend(ctx, 13)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, 14, hits[0].Game.Id)
	})

	t.Run("unknown reference is not found", func(t *testing.T) {
		recommender, _, cleanup := newTestRecommender(t)
		defer cleanup()

		_, err := recommender.Recommend(ctx, 424242)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("no matches yields empty slice", func(t *testing.T) {
		recommender, games, cleanup := newTestRecommender(t, WithExcludeReference())
		defer cleanup()

		// A game with a unique profile and vocabulary resembles nothing.
		loner := &core.Game{
			Id:          777,
			Name:        "Hermit",
			Description: "Solitary puzzle about lighthouse upkeep",
			MinPlayers:  1,
			MaxPlayers:  1,
			PlayingTime: 15,
		}
		require.NoError(t, games.PutGames(ctx, loner))
		require.NoError(t, recommender.index.IndexGames(ctx, loner))

		hits, err := recommender.Recommend(ctx, 777)
		require.NoError(t, err)
		assert.NotNil(t, hits)
		assert.Empty(t, hits)
	})
}
