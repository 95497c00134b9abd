// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder,
// ai.SentimentAnalyzer, and ai.AIProvider for use in unit tests. The mocks
// allow tests to run without external AI service dependencies and enable
// controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	vector, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	mockAnalyzer := mock.NewMockSentimentAnalyzer()
//	mockAnalyzer.AnalyzeFunc = func(ctx context.Context, text string) (core.Sentiment, error) {
//	    return core.Sentiment{Polarity: 0.5, Subjectivity: 0.5}, nil
//	}
//
//	// Check call counts
//	count := mockAnalyzer.CallCount()
//
// # Default Behavior
//
//   - MockEmbedder: Returns deterministic unit vectors based on text hash
//   - MockSentimentAnalyzer: Scores text against a small fixed word lexicon
//   - MockProvider: Aggregates mock embedder and analyzer
package mock
