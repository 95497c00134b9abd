// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/poiesic/ludex/ai"
	"github.com/poiesic/ludex/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// SentimentAnalyzer implements ai.SentimentAnalyzer using OpenAI-compatible chat APIs.
type SentimentAnalyzer struct {
	client llms.Model
	logger *slog.Logger
}

// sentimentResponse matches the JSON structure expected from the LLM.
type sentimentResponse struct {
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
}

// newSentimentAnalyzer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newSentimentAnalyzer(config *ai.Config) (*SentimentAnalyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.SentimentHost),
		openai.WithToken("none"),
		openai.WithModel(config.SentimentModel),
	)
	if err != nil {
		return nil, err
	}

	return &SentimentAnalyzer{
		client: client,
		logger: slog.Default().With("component", "openai-sentiment"),
	}, nil
}

// NewSentimentAnalyzer creates a new sentiment analyzer using the provided configuration.
//
// Returns ai.SentimentAnalyzer interface to enforce abstraction.
func NewSentimentAnalyzer(config *ai.Config) (ai.SentimentAnalyzer, error) {
	return newSentimentAnalyzer(config)
}

// Analyze scores a piece of text for polarity and subjectivity using an LLM.
// Out-of-range model output is clamped into the documented ranges.
func (a *SentimentAnalyzer) Analyze(ctx context.Context, text string) (core.Sentiment, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(sentimentPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result sentimentResponse
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := a.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			a.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return core.Sentiment{}, err
		}

		if len(response.Choices) < 1 {
			a.logger.Debug("no choices returned from model")
			return core.Sentiment{}, nil
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			a.logger.Warn("error parsing sentiment response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		a.logger.Error("failed to parse sentiment response after retries", "err", lastErr)
		return core.Sentiment{}, lastErr
	}

	return core.Sentiment{
		Polarity:     clamp(result.Polarity, -1, 1),
		Subjectivity: clamp(result.Subjectivity, 0, 1),
	}, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
