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


package review

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/ludex/ai"
	"github.com/poiesic/ludex/core"
	"github.com/poiesic/ludex/storage"
)

// Aggregator accepts game reviews, enriches them with sentiment scores at
// submission time, and aggregates per-game sentiment. Reviews are
// append-only: once stored they are never rescored, updated, or deleted.
type Aggregator struct {
	reviews  storage.ReviewRepository
	games    storage.GameRepository
	analyzer ai.SentimentAnalyzer
	logger   *slog.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAggregator creates a new review aggregator.
func NewAggregator(
	reviews storage.ReviewRepository,
	games storage.GameRepository,
	analyzer ai.SentimentAnalyzer,
	opts ...Option,
) (*Aggregator, error) {
	if reviews == nil {
		return nil, ErrReviewRepositoryRequired
	}
	if games == nil {
		return nil, ErrGameRepositoryRequired
	}
	if analyzer == nil {
		return nil, ErrAnalyzerRequired
	}

	a := &Aggregator{
		reviews:  reviews,
		games:    games,
		analyzer: analyzer,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// AddReview scores the review text and appends it to the game's review list.
// The game must exist; reviewing an unknown game fails with core.ErrNotFound.
// Empty review text is accepted and scored like any other text.
func (a *Aggregator) AddReview(ctx context.Context, gameID int, text string) (*core.Review, error) {
	if _, err := a.games.GetGame(ctx, gameID); err != nil {
		return nil, fmt.Errorf("game %d: %w", gameID, err)
	}

	sentiment, err := a.analyzer.Analyze(ctx, text)
	if err != nil {
		a.logger.Error("failed to score review", "gameID", gameID, "err", err)
		return nil, err
	}

	now := time.Now()
	review := &core.Review{
		Id:           core.IDFromContent(fmt.Sprintf("%d:%d:%s", gameID, now.UnixNano(), text)),
		GameId:       gameID,
		Text:         text,
		Polarity:     sentiment.Polarity,
		Subjectivity: sentiment.Subjectivity,
		SubmittedAt:  now,
	}

	if err := a.reviews.AppendReview(ctx, review); err != nil {
		return nil, err
	}

	a.logger.Debug("review added",
		"gameID", gameID,
		"polarity", review.Polarity,
		"classification", review.Classification().String())
	return review, nil
}

// Reviews returns all reviews of a game in submission order. Games with no
// reviews yield an empty slice; the game's existence is not checked.
func (a *Aggregator) Reviews(ctx context.Context, gameID int) ([]*core.Review, error) {
	return a.reviews.GetReviews(ctx, gameID)
}

// Summarize aggregates the sentiment of all reviews of a game. A game with
// zero reviews has no summary: the result is nil, not a zero-valued summary,
// so "no reviews" and "reviews averaging to zero" stay distinguishable.
func (a *Aggregator) Summarize(ctx context.Context, gameID int) (*core.SentimentSummary, error) {
	reviews, err := a.reviews.GetReviews(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, nil
	}

	var polaritySum, subjectivitySum float64
	for _, review := range reviews {
		polaritySum += review.Polarity
		subjectivitySum += review.Subjectivity
	}

	n := float64(len(reviews))
	return &core.SentimentSummary{
		MeanPolarity:     polaritySum / n,
		MeanSubjectivity: subjectivitySum / n,
		ReviewCount:      len(reviews),
	}, nil
}
