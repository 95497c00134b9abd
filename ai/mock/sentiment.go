package mock

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/poiesic/ludex/core"
)

// MockSentimentAnalyzer is a test double for ai.SentimentAnalyzer.
// It allows custom behavior injection via a function field.
type MockSentimentAnalyzer struct {
	// AnalyzeFunc is called by Analyze if set.
	// If nil, uses default lexicon-based behavior.
	AnalyzeFunc func(ctx context.Context, text string) (core.Sentiment, error)

	callCount atomic.Int64
}

// Small fixed lexicon so tests can construct text with a known score.
var (
	positiveWords = map[string]bool{
		"great": true, "good": true, "fun": true,
		"love": true, "excellent": true, "amazing": true,
	}
	negativeWords = map[string]bool{
		"bad": true, "boring": true, "awful": true,
		"terrible": true, "hate": true,
	}
)

// NewMockSentimentAnalyzer creates a mock analyzer with default lexicon-based behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockSentimentAnalyzer() *MockSentimentAnalyzer {
	return &MockSentimentAnalyzer{}
}

// Analyze scores text with a tiny word lexicon. Polarity is the signed
// fraction of sentiment-bearing words; subjectivity is their total fraction.
// Same text always yields the same score.
func (m *MockSentimentAnalyzer) Analyze(ctx context.Context, text string) (core.Sentiment, error) {
	m.callCount.Add(1)

	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, text)
	}

	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return core.Sentiment{}, nil
	}

	var positive, negative int
	for _, token := range tokens {
		token = strings.Trim(token, ".,!?;:\"'()")
		if positiveWords[token] {
			positive++
		}
		if negativeWords[token] {
			negative++
		}
	}

	polarity := float64(positive-negative) / float64(len(tokens))
	subjectivity := float64(positive+negative) / float64(len(tokens))
	if polarity > 1 {
		polarity = 1
	}
	if polarity < -1 {
		polarity = -1
	}
	if subjectivity > 1 {
		subjectivity = 1
	}

	return core.Sentiment{
		Polarity:     polarity,
		Subjectivity: subjectivity,
	}, nil
}

// CallCount returns the number of times Analyze was called.
func (m *MockSentimentAnalyzer) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and any injected behavior.
func (m *MockSentimentAnalyzer) Reset() {
	m.callCount.Store(0)
	m.AnalyzeFunc = nil
}
