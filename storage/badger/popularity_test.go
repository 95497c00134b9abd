package badger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopularityRepository_IncrementLookup(t *testing.T) {
	games, pops, reviews, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		reviews.Close()
		pops.Close()
		games.Close()
		backend.Close()
	}()

	ctx := context.Background()

	t.Run("first lookup creates count 1", func(t *testing.T) {
		require.NoError(t, pops.IncrementLookup(ctx, 13))

		records, err := pops.TopRecords(ctx, 10)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, 13, records[0].GameId)
		assert.Equal(t, int64(1), records[0].Count)
		assert.False(t, records[0].LastSeen.IsZero())
	})

	t.Run("later lookups increment by one", func(t *testing.T) {
		require.NoError(t, pops.IncrementLookup(ctx, 13))
		require.NoError(t, pops.IncrementLookup(ctx, 13))

		records, err := pops.TopRecords(ctx, 10)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, int64(3), records[0].Count)
	})
}

func TestPopularityRepository_ConcurrentIncrements(t *testing.T) {
	games, pops, reviews, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		reviews.Close()
		pops.Close()
		games.Close()
		backend.Close()
	}()

	ctx := context.Background()
	const (
		workers             = 50
		incrementsPerWorker = 4
	)

	var wg sync.WaitGroup
	errs := make(chan error, workers*incrementsPerWorker)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < incrementsPerWorker; j++ {
				errs <- pops.IncrementLookup(ctx, 7)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	// N concurrent increments must yield exactly N; lost updates are a bug.
	records, err := pops.TopRecords(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(workers*incrementsPerWorker), records[0].Count)
}

func TestPopularityRepository_TopRecordsOrdering(t *testing.T) {
	games, pops, reviews, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		reviews.Close()
		pops.Close()
		games.Close()
		backend.Close()
	}()

	ctx := context.Background()
	lookups := map[int]int{1: 2, 2: 5, 3: 1, 4: 5}
	for id, n := range lookups {
		for i := 0; i < n; i++ {
			require.NoError(t, pops.IncrementLookup(ctx, id))
		}
	}

	records, err := pops.TopRecords(ctx, 3)
	require.NoError(t, err)
	require.Len(t, records, 3)
	// Count descending, ascending game id on ties
	assert.Equal(t, 2, records[0].GameId)
	assert.Equal(t, 4, records[1].GameId)
	assert.Equal(t, 1, records[2].GameId)
}
