package ai

import (
	"context"

	"github.com/poiesic/ludex/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// SentimentAnalyzer scores free text for sentiment polarity and subjectivity.
// Implementations must be thread-safe for concurrent use.
type SentimentAnalyzer interface {
	// Analyze scores a piece of text. Polarity is in [-1, 1] where negative
	// values indicate negative sentiment; Subjectivity is in [0, 1] where 0
	// is fully objective. Implementations clamp out-of-range model output
	// rather than failing.
	Analyze(ctx context.Context, text string) (core.Sentiment, error)
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and
// SentimentAnalyzer instances, ensuring they share configuration and
// resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// SentimentAnalyzer returns the sentiment scoring service.
	// The returned SentimentAnalyzer is safe for concurrent use.
	SentimentAnalyzer() SentimentAnalyzer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
