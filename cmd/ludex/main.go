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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/poiesic/ludex"
	"github.com/poiesic/ludex/ai"
	"github.com/poiesic/ludex/httpapi"
	"github.com/poiesic/ludex/ingest"
	"github.com/poiesic/ludex/search"
	"github.com/urfave/cli/v2"
)

func main() {
	// Optional .env for local development; absence is fine.
	godotenv.Load()

	app := &cli.App{
		Name:  "ludex",
		Usage: "Board game catalog search service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Path to the catalog data directory",
				Value:   "./data",
				EnvVars: []string{"LUDEX_DATA"},
			},
			&cli.StringFlag{
				Name:    "ai-host",
				Usage:   "OpenAI-compatible service host URL",
				Value:   "http://localhost:11434/v1",
				EnvVars: []string{"LUDEX_AI_HOST"},
			},
			&cli.StringFlag{
				Name:    "embedding-model",
				Usage:   "Embedding model name",
				Value:   "all-minilm",
				EnvVars: []string{"LUDEX_EMBEDDING_MODEL"},
			},
			&cli.StringFlag{
				Name:    "sentiment-model",
				Usage:   "Sentiment scoring model name",
				Value:   "qwen2.5:3b",
				EnvVars: []string{"LUDEX_SENTIMENT_MODEL"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the catalog API over HTTP",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Aliases: []string{"a"},
						Usage:   "Listen address",
						Value:   ":8080",
						EnvVars: []string{"LUDEX_ADDR"},
					},
				},
			},
			{
				Name:   "ingest",
				Usage:  "Load a catalog CSV dump into the store and index",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "csv",
						Aliases:  []string{"c"},
						Usage:    "Path to the semicolon-delimited catalog CSV",
						Required: true,
					},
				},
			},
			{
				Name:   "embed",
				Usage:  "Backfill description embeddings for stored games",
				Action: embedCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent embedding workers",
						Value: 4,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search the catalog by name",
				ArgsUsage: "<name>",
				Action:    searchCommand,
			},
			{
				Name:   "similar",
				Usage:  "List games similar to a reference game",
				Action: similarCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "id",
						Usage:    "Reference game id",
						Required: true,
					},
				},
			},
			{
				Name:   "popular",
				Usage:  "List the most-looked-up games",
				Action: popularCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openCatalog(c *cli.Context) (*ludex.Catalog, error) {
	cfg := ai.NewConfig(
		ai.WithHost(c.String("ai-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithSentimentModel(c.String("sentiment-model")),
	)
	return ludex.Open(c.String("data"),
		ludex.WithAIConfig(cfg),
		ludex.WithExcludeReference(),
	)
}

func serveCommand(c *cli.Context) error {
	catalog, err := openCatalog(c)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer catalog.Close()

	server, err := httpapi.NewServer(catalog)
	if err != nil {
		return err
	}
	return server.Run(c.String("addr"))
}

func ingestCommand(c *cli.Context) error {
	catalog, err := openCatalog(c)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer catalog.Close()

	loader, err := catalog.NewLoader()
	if err != nil {
		return err
	}

	report, err := loader.LoadFile(context.Background(), c.String("csv"))
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Loaded:  %d\n", report.Loaded)
	fmt.Fprintf(os.Stderr, "Skipped: %d\n", report.Skipped)
	fmt.Fprintf(os.Stderr, "Invalid: %d\n", report.Invalid)
	return nil
}

func embedCommand(c *cli.Context) error {
	catalog, err := openCatalog(c)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer catalog.Close()

	// Worker count bounds concurrent requests to the embedding service.
	enricher, err := catalog.NewEnricher(ingest.WithPoolSize(c.Int("workers")))
	if err != nil {
		return err
	}
	defer enricher.Release()

	enriched, err := enricher.EnrichAll(context.Background())
	if err != nil {
		return fmt.Errorf("embedding pass failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Enriched: %d\n", enriched)
	return nil
}

func searchCommand(c *cli.Context) error {
	name := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if name == "" {
		return fmt.Errorf("a search name is required")
	}

	catalog, err := openCatalog(c)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer catalog.Close()

	hits, err := catalog.Search(context.Background(), search.Criteria{Name: name})
	if err != nil {
		return err
	}

	for _, hit := range hits {
		fmt.Printf("%8d  %-40s  %.3f\n", hit.Game.Id, hit.Game.Name, hit.Score)
	}
	return nil
}

func similarCommand(c *cli.Context) error {
	catalog, err := openCatalog(c)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer catalog.Close()

	hits, err := catalog.SimilarGames(context.Background(), c.Int("id"))
	if err != nil {
		return err
	}

	for _, hit := range hits {
		fmt.Printf("%8d  %-40s  %.3f\n", hit.Game.Id, hit.Game.Name, hit.Score)
	}
	return nil
}

func popularCommand(c *cli.Context) error {
	catalog, err := openCatalog(c)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer catalog.Close()

	popular, err := catalog.PopularSearches(context.Background())
	if err != nil {
		return err
	}

	for _, p := range popular {
		fmt.Printf("%8d  %-40s  %d lookups\n", p.Game.Id, p.Game.Name, p.Count)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
