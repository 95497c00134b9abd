package ingest

import (
	"context"
	"strings"
	"testing"

	"github.com/poiesic/ludex/core"
	"github.com/poiesic/ludex/index"
	"github.com/poiesic/ludex/storage"
	"github.com/poiesic/ludex/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogCSV = `id;details.name;details.description;details.minplayers;details.maxplayers;details.minage;details.playingtime;attributes.boardgamecategory;attributes.boardgamemechanic
13;Catan;Trade wood and sheep;3.0;4.0;10.0;120.0;Negotiation,Economic;Dice Rolling,Trading
822;Carcassonne;Lay tiles to build cities;2.0;5.0;7.0;45.0;Medieval;Tile Placement
`

func newTestLoader(t *testing.T) (*Loader, storage.GameRepository, *index.Index, func()) {
	t.Helper()

	games, pops, reviews, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)

	ix, err := index.OpenMemory()
	require.NoError(t, err)

	loader, err := NewLoader(games, ix)
	require.NoError(t, err)

	cleanup := func() {
		ix.Close()
		reviews.Close()
		pops.Close()
		games.Close()
		backend.Close()
	}
	return loader, games, ix, cleanup
}

func TestLoader_Load(t *testing.T) {
	loader, games, ix, cleanup := newTestLoader(t)
	defer cleanup()

	ctx := context.Background()

	report, err := loader.Load(ctx, strings.NewReader(catalogCSV))
	require.NoError(t, err)
	assert.Equal(t, 2, report.Loaded)
	assert.Equal(t, 0, report.Skipped)
	assert.Equal(t, 0, report.Invalid)

	game, err := games.GetGame(ctx, 13)
	require.NoError(t, err)
	assert.Equal(t, "Catan", game.Name)
	assert.Equal(t, 3, game.MinPlayers)
	assert.Equal(t, 4, game.MaxPlayers)
	assert.Equal(t, 120, game.PlayingTime)
	assert.Equal(t, []string{"Negotiation", "Economic"}, game.Categories)
	assert.Equal(t, []string{"Dice Rolling", "Trading"}, game.Mechanics)

	count, err := ix.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	present, err := ix.Has(ctx, 822)
	require.NoError(t, err)
	assert.True(t, present)
}

func TestLoader_Load_Idempotent(t *testing.T) {
	loader, games, _, cleanup := newTestLoader(t)
	defer cleanup()

	ctx := context.Background()

	_, err := loader.Load(ctx, strings.NewReader(catalogCSV))
	require.NoError(t, err)

	// Hand the stored game a vector to prove reloads don't clobber it.
	game, err := games.GetGame(ctx, 13)
	require.NoError(t, err)
	game.Vector = []float32{0.1, 0.2}
	require.NoError(t, games.PutGames(ctx, game))

	report, err := loader.Load(ctx, strings.NewReader(catalogCSV))
	require.NoError(t, err)
	assert.Equal(t, 0, report.Loaded)
	assert.Equal(t, 2, report.Skipped)

	game, err = games.GetGame(ctx, 13)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2}, game.Vector)
}

func TestLoader_Load_BadRows(t *testing.T) {
	loader, _, _, cleanup := newTestLoader(t)
	defer cleanup()

	ctx := context.Background()

	csv := `id;details.name;details.description;details.minplayers;details.maxplayers;details.minage;details.playingtime;attributes.boardgamecategory;attributes.boardgamemechanic
13;Catan;Trade wood;3;4;10;120;;
bogus;Broken;not a number id;1;2;8;30;;
99;;nameless games are invalid;1;2;8;30;;
`

	report, err := loader.Load(ctx, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Loaded)
	assert.Equal(t, 2, report.Invalid)
}

func TestLoader_Load_MissingColumn(t *testing.T) {
	loader, _, _, cleanup := newTestLoader(t)
	defer cleanup()

	_, err := loader.Load(context.Background(), strings.NewReader("id;details.name\n1;Catan\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestLoader_Load_EmptyTags(t *testing.T) {
	loader, games, _, cleanup := newTestLoader(t)
	defer cleanup()

	ctx := context.Background()

	csv := `id;details.name;details.description;details.minplayers;details.maxplayers;details.minage;details.playingtime;attributes.boardgamecategory;attributes.boardgamemechanic
7;Tagless;no tags at all;1;2;8;30;;
`
	report, err := loader.Load(ctx, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Loaded)

	game, err := games.GetGame(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, game.Categories)
	assert.Empty(t, game.Mechanics)
	require.NoError(t, core.ValidateGame(game))
}
