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


package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/poiesic/ludex/core"
	"github.com/poiesic/ludex/index"
	"github.com/poiesic/ludex/search"
	"github.com/poiesic/ludex/storage"
)

// Recommender finds games similar to a reference game. Similarity combines a
// textual overlap clause (selected description terms plus shared tags) with
// exact matches on the reference's player count and playing time profile; a
// candidate must overlap textually AND share the numeric profile.
type Recommender struct {
	games      storage.GameRepository
	index      *index.Index
	excludeRef bool
	logger     *slog.Logger
}

// Option configures a Recommender.
type Option func(*Recommender) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recommender) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithExcludeReference drops the reference game itself from the results.
// By default the reference is kept when it matches its own profile, which
// it always does; callers rendering "similar games" lists usually want it
// excluded.
func WithExcludeReference() Option {
	return func(r *Recommender) error {
		r.excludeRef = true
		return nil
	}
}

// New creates a new recommender.
func New(games storage.GameRepository, idx *index.Index, opts ...Option) (*Recommender, error) {
	if games == nil {
		return nil, ErrGameRepositoryRequired
	}
	if idx == nil {
		return nil, ErrIndexRequired
	}

	r := &Recommender{
		games:  games,
		index:  idx,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Recommend returns up to ListPageSize games similar to the reference game,
// best match first. An unknown reference id fails with core.ErrNotFound; a
// reference nothing resembles yields an empty slice, not an error.
func (r *Recommender) Recommend(ctx context.Context, gameID int) ([]*core.GameHit, error) {
	ref, err := r.games.GetGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("reference game %d: %w", gameID, err)
	}

	conditions := []query.Query{
		r.similarityClause(ref),
		exactMatch("minplayers", ref.MinPlayers),
		exactMatch("maxplayers", ref.MaxPlayers),
		exactMatch("playingtime", ref.PlayingTime),
	}

	// One extra slot so the reference can be dropped without shorting the page.
	size := search.ListPageSize
	if r.excludeRef {
		size++
	}

	hits, err := r.index.Execute(ctx, search.Compose(conditions, size))
	if err != nil {
		return nil, err
	}

	results := make([]*core.GameHit, 0, len(hits))
	for _, hit := range hits {
		if r.excludeRef && hit.GameId == ref.Id {
			continue
		}
		game, err := r.games.GetGame(ctx, hit.GameId)
		if err != nil {
			r.logger.Warn("indexed game missing from store", "gameID", hit.GameId, "err", err)
			continue
		}
		results = append(results, &core.GameHit{Game: game, Score: hit.Score})
	}
	if len(results) > search.ListPageSize {
		results = results[:search.ListPageSize]
	}
	return results, nil
}

// similarityClause builds the textual overlap condition: a disjunction over
// the reference's selected description terms and its tag values. A candidate
// matching any selected term satisfies the clause. A reference with no
// selectable terms matches nothing.
func (r *Recommender) similarityClause(ref *core.Game) query.Query {
	selected := selectTerms(ref.Description, ref.Categories, ref.Mechanics)
	if len(selected) == 0 {
		return bleve.NewMatchNoneQuery()
	}

	descriptionTerms := make([]string, 0, len(selected))
	clauses := make([]query.Query, 0, len(selected))
	for _, ft := range selected {
		if ft.field == "description" {
			descriptionTerms = append(descriptionTerms, ft.term)
			continue
		}
		tq := bleve.NewTermQuery(ft.term)
		tq.SetField(ft.field)
		clauses = append(clauses, tq)
	}
	if len(descriptionTerms) > 0 {
		mq := bleve.NewMatchQuery(strings.Join(descriptionTerms, " "))
		mq.SetField("description")
		clauses = append(clauses, mq)
	}

	if len(clauses) == 1 {
		return clauses[0]
	}
	return bleve.NewDisjunctionQuery(clauses...)
}

// exactMatch builds attribute == value as a degenerate inclusive range.
func exactMatch(field string, value int) query.Query {
	v := float64(value)
	inclusive := true
	q := bleve.NewNumericRangeInclusiveQuery(&v, &v, &inclusive, &inclusive)
	q.SetField(field)
	return q
}
