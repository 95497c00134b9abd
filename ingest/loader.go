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


package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/poiesic/ludex/core"
	"github.com/poiesic/ludex/index"
	"github.com/poiesic/ludex/storage"
)

// Catalog dumps use semicolons between columns because descriptions and tag
// lists are full of commas. Tag columns hold comma-joined value lists.
const (
	csvDelimiter = ';'
	tagDelimiter = ","

	// writeBatchSize bounds how many games one store write and one index
	// batch carry.
	writeBatchSize = 500
)

// Column names as exported by the catalog dump.
const (
	colID          = "id"
	colName        = "details.name"
	colDescription = "details.description"
	colMinPlayers  = "details.minplayers"
	colMaxPlayers  = "details.maxplayers"
	colMinAge      = "details.minage"
	colPlayingTime = "details.playingtime"
	colCategories  = "attributes.boardgamecategory"
	colMechanics   = "attributes.boardgamemechanic"
)

// Loader reads catalog CSV dumps into the game store and the lexical index.
// Loading is idempotent per id: rows whose id is already stored are skipped,
// so re-running a load never clobbers enriched records.
type Loader struct {
	games  storage.GameRepository
	index  *index.Index
	logger *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader) error

// WithLoaderLogger sets a custom logger.
// Default is slog.Default().
func WithLoaderLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// NewLoader creates a new catalog loader.
func NewLoader(games storage.GameRepository, idx *index.Index, opts ...LoaderOption) (*Loader, error) {
	if games == nil {
		return nil, ErrGameRepositoryRequired
	}
	if idx == nil {
		return nil, ErrIndexRequired
	}

	l := &Loader{
		games:  games,
		index:  idx,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// Report summarizes one load run.
type Report struct {
	Loaded  int // rows stored and indexed
	Skipped int // rows whose id was already present
	Invalid int // rows dropped by validation or parsing
}

// LoadFile loads a catalog CSV file.
func (l *Loader) LoadFile(ctx context.Context, path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return l.Load(ctx, f)
}

// Load reads semicolon-delimited catalog rows and stores every new, valid
// game. Malformed or invalid rows are logged and counted, never fatal; a
// bad header or an unreadable stream is.
func (l *Loader) Load(ctx context.Context, r io.Reader) (*Report, error) {
	reader := csv.NewReader(r)
	reader.Comma = csvDelimiter
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	batch := make([]*core.Game, 0, writeBatchSize)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}

		game, err := parseRow(row, columns)
		if err != nil {
			l.logger.Warn("dropping unparseable row", "err", err)
			report.Invalid++
			continue
		}
		if err := core.ValidateGame(game); err != nil {
			l.logger.Warn("dropping invalid game", "gameID", game.Id, "err", err)
			report.Invalid++
			continue
		}

		_, err = l.games.GetGame(ctx, game.Id)
		if err == nil {
			report.Skipped++
			continue
		}
		if !errors.Is(err, core.ErrNotFound) {
			return nil, err
		}

		batch = append(batch, game)
		if len(batch) >= writeBatchSize {
			if err := l.flush(ctx, batch, report); err != nil {
				return nil, err
			}
			batch = batch[:0]
		}
	}

	if err := l.flush(ctx, batch, report); err != nil {
		return nil, err
	}

	l.logger.Info("catalog load complete",
		"loaded", report.Loaded,
		"skipped", report.Skipped,
		"invalid", report.Invalid)
	return report, nil
}

func (l *Loader) flush(ctx context.Context, batch []*core.Game, report *Report) error {
	if len(batch) == 0 {
		return nil
	}
	if err := l.games.PutGames(ctx, batch...); err != nil {
		return err
	}
	if err := l.index.IndexGames(ctx, batch...); err != nil {
		return err
	}
	report.Loaded += len(batch)
	return nil
}

// mapColumns resolves column names to positions. All columns are required;
// a dump missing one is from an incompatible export and is rejected whole.
func mapColumns(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[strings.TrimSpace(name)] = i
	}

	required := []string{
		colID, colName, colDescription,
		colMinPlayers, colMaxPlayers, colMinAge, colPlayingTime,
		colCategories, colMechanics,
	}
	for _, name := range required {
		if _, ok := positions[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	return positions, nil
}

func parseRow(row []string, columns map[string]int) (*core.Game, error) {
	id, err := intField(row, columns, colID)
	if err != nil {
		return nil, err
	}
	minPlayers, err := intField(row, columns, colMinPlayers)
	if err != nil {
		return nil, err
	}
	maxPlayers, err := intField(row, columns, colMaxPlayers)
	if err != nil {
		return nil, err
	}
	minAge, err := intField(row, columns, colMinAge)
	if err != nil {
		return nil, err
	}
	playingTime, err := intField(row, columns, colPlayingTime)
	if err != nil {
		return nil, err
	}

	return &core.Game{
		Id:          id,
		Name:        strings.TrimSpace(stringField(row, columns, colName)),
		Description: strings.TrimSpace(stringField(row, columns, colDescription)),
		MinPlayers:  minPlayers,
		MaxPlayers:  maxPlayers,
		MinAge:      minAge,
		PlayingTime: playingTime,
		Categories:  splitTags(stringField(row, columns, colCategories)),
		Mechanics:   splitTags(stringField(row, columns, colMechanics)),
	}, nil
}

func stringField(row []string, columns map[string]int, name string) string {
	pos := columns[name]
	if pos >= len(row) {
		return ""
	}
	return row[pos]
}

// intField parses a numeric column. Dumps write integers as floats
// ("4.0"), so parse through float64 and truncate. Empty cells mean zero.
func intField(row []string, columns map[string]int, name string) (int, error) {
	raw := strings.TrimSpace(stringField(row, columns, name))
	if raw == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", name, err)
	}
	return int(f), nil
}

// splitTags splits a comma-joined tag list, trimming whitespace and
// dropping empty entries.
func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, tagDelimiter)
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
