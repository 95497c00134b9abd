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


package popularity

import (
	"context"
	"log/slog"

	"github.com/poiesic/ludex/core"
	"github.com/poiesic/ludex/storage"
)

// Tracker counts game detail lookups and serves the most-looked-up list.
// Tracking is strictly best-effort: a failed increment is logged and
// swallowed so it can never fail the lookup that triggered it.
type Tracker struct {
	records storage.PopularityRepository
	games   storage.GameRepository
	logger  *slog.Logger
}

// Option configures a Tracker.
type Option func(*Tracker) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) error {
		if logger == nil {
			logger = slog.Default()
		}
		t.logger = logger
		return nil
	}
}

// NewTracker creates a new popularity tracker.
func NewTracker(records storage.PopularityRepository, games storage.GameRepository, opts ...Option) (*Tracker, error) {
	if records == nil {
		return nil, ErrPopularityRepositoryRequired
	}
	if games == nil {
		return nil, ErrGameRepositoryRequired
	}

	t := &Tracker{
		records: records,
		games:   games,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// RecordLookup bumps the game's lookup counter. No return value: counting
// failures must never surface to the lookup path, so they are logged here
// and dropped.
func (t *Tracker) RecordLookup(ctx context.Context, gameID int) {
	if err := t.records.IncrementLookup(ctx, gameID); err != nil {
		t.logger.Error("failed to record game lookup", "gameID", gameID, "err", err)
	}
}

// TopN returns the most-looked-up games with their counts, highest count
// first. Counter records whose game has since vanished from the store are
// skipped, so the list can be shorter than limit.
func (t *Tracker) TopN(ctx context.Context, limit int) ([]*core.PopularGame, error) {
	records, err := t.records.TopRecords(ctx, limit)
	if err != nil {
		return nil, err
	}

	popular := make([]*core.PopularGame, 0, len(records))
	for _, record := range records {
		game, err := t.games.GetGame(ctx, record.GameId)
		if err != nil {
			t.logger.Warn("popularity record for missing game", "gameID", record.GameId, "err", err)
			continue
		}
		popular = append(popular, &core.PopularGame{Game: game, Count: record.Count})
	}
	return popular, nil
}
