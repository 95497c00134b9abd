package review

import (
	"context"
	"testing"

	"github.com/poiesic/ludex/ai/mock"
	"github.com/poiesic/ludex/core"
	"github.com/poiesic/ludex/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAggregator(t *testing.T) (*Aggregator, *mock.MockSentimentAnalyzer, func()) {
	t.Helper()

	games, pops, reviews, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, games.PutGames(ctx,
		&core.Game{Id: 13, Name: "Catan"},
		&core.Game{Id: 822, Name: "Carcassonne"},
	))

	analyzer := mock.NewMockSentimentAnalyzer()
	aggregator, err := NewAggregator(reviews, games, analyzer)
	require.NoError(t, err)

	cleanup := func() {
		reviews.Close()
		pops.Close()
		games.Close()
		backend.Close()
	}
	return aggregator, analyzer, cleanup
}

func TestNewAggregator_RequiredDependencies(t *testing.T) {
	games, pops, reviews, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()
	defer games.Close()
	defer pops.Close()
	defer reviews.Close()

	analyzer := mock.NewMockSentimentAnalyzer()

	_, err = NewAggregator(nil, games, analyzer)
	assert.ErrorIs(t, err, ErrReviewRepositoryRequired)

	_, err = NewAggregator(reviews, nil, analyzer)
	assert.ErrorIs(t, err, ErrGameRepositoryRequired)

	_, err = NewAggregator(reviews, games, nil)
	assert.ErrorIs(t, err, ErrAnalyzerRequired)
}

func TestAggregator_AddReview(t *testing.T) {
	aggregator, analyzer, cleanup := newTestAggregator(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("scores and stores the review", func(t *testing.T) {
		review, err := aggregator.AddReview(ctx, 13, "great fun, love it")
		require.NoError(t, err)
		require.NotNil(t, review)

		assert.Equal(t, 13, review.GameId)
		assert.Positive(t, review.Polarity)
		assert.Equal(t, core.ClassificationPositive, review.Classification())
		assert.False(t, review.SubmittedAt.IsZero())

		stored, err := aggregator.Reviews(ctx, 13)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, "great fun, love it", stored[0].Text)
	})

	t.Run("unknown game is rejected", func(t *testing.T) {
		_, err := aggregator.AddReview(ctx, 424242, "great")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("analyzer failure propagates", func(t *testing.T) {
		analyzer.AnalyzeFunc = func(ctx context.Context, text string) (core.Sentiment, error) {
			return core.Sentiment{}, assert.AnError
		}
		defer analyzer.Reset()

		_, err := aggregator.AddReview(ctx, 13, "anything")
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("empty text is accepted", func(t *testing.T) {
		review, err := aggregator.AddReview(ctx, 822, "")
		require.NoError(t, err)
		assert.Equal(t, core.ClassificationNeutral, review.Classification())
	})
}

func TestAggregator_Reviews_SubmissionOrder(t *testing.T) {
	aggregator, _, cleanup := newTestAggregator(t)
	defer cleanup()

	ctx := context.Background()
	texts := []string{"first impression", "second play", "third play"}
	for _, text := range texts {
		_, err := aggregator.AddReview(ctx, 13, text)
		require.NoError(t, err)
	}

	reviews, err := aggregator.Reviews(ctx, 13)
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	for i, text := range texts {
		assert.Equal(t, text, reviews[i].Text)
	}
}

func TestAggregator_Summarize(t *testing.T) {
	aggregator, analyzer, cleanup := newTestAggregator(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("no reviews means no summary", func(t *testing.T) {
		summary, err := aggregator.Summarize(ctx, 13)
		require.NoError(t, err)
		assert.Nil(t, summary)
	})

	t.Run("opposing reviews average to zero", func(t *testing.T) {
		scores := []float64{0.5, -0.5}
		i := 0
		analyzer.AnalyzeFunc = func(ctx context.Context, text string) (core.Sentiment, error) {
			s := core.Sentiment{Polarity: scores[i], Subjectivity: 0.6}
			i++
			return s, nil
		}
		defer analyzer.Reset()

		_, err := aggregator.AddReview(ctx, 13, "loved the trading")
		require.NoError(t, err)
		_, err = aggregator.AddReview(ctx, 13, "hated the dice")
		require.NoError(t, err)

		summary, err := aggregator.Summarize(ctx, 13)
		require.NoError(t, err)
		require.NotNil(t, summary)
		assert.InDelta(t, 0.0, summary.MeanPolarity, 1e-9)
		assert.InDelta(t, 0.6, summary.MeanSubjectivity, 1e-9)
		assert.Equal(t, 2, summary.ReviewCount)

		// A zero mean is still a summary, unlike the zero-review case.
		assert.Equal(t, core.ClassificationNeutral, core.Classify(summary.MeanPolarity))
	})
}
