package openai

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEmbeddings satisfies the langchaingo embeddings interface with canned
// vectors, so width checking is testable without a live service.
type stubEmbeddings struct {
	vectors [][]float32
}

func (s stubEmbeddings) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return s.vectors, nil
}

func (s stubEmbeddings) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return s.vectors[0], nil
}

func newStubbedEmbedder(dims int, vectors [][]float32) *Embedder {
	return &Embedder{
		embedder: stubEmbeddings{vectors: vectors},
		dims:     dims,
		logger:   slog.Default(),
	}
}

func TestEmbedder_WidthChecking(t *testing.T) {
	ctx := context.Background()

	t.Run("configured width passes through", func(t *testing.T) {
		e := newStubbedEmbedder(3, [][]float32{{0.1, 0.2, 0.3}})

		vector, err := e.EmbedText(ctx, "settle an island")
		require.NoError(t, err)
		assert.Equal(t, []float32{0.1, 0.2, 0.3}, vector)
	})

	t.Run("wrong width is rejected", func(t *testing.T) {
		e := newStubbedEmbedder(3, [][]float32{{0.1, 0.2, 0.3, 0.4}})

		_, err := e.EmbedText(ctx, "settle an island")
		assert.ErrorIs(t, err, ErrVectorWidth)
	})

	t.Run("wrong width anywhere in a batch rejects the batch", func(t *testing.T) {
		e := newStubbedEmbedder(2, [][]float32{{0.1, 0.2}, {0.3}})

		_, err := e.EmbedTexts(ctx, []string{"a", "b"})
		assert.ErrorIs(t, err, ErrVectorWidth)
	})

	t.Run("vector count must match text count", func(t *testing.T) {
		e := newStubbedEmbedder(2, [][]float32{{0.1, 0.2}})

		_, err := e.EmbedTexts(ctx, []string{"a", "b"})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrVectorWidth)
	})
}
