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
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/seeker"
	"github.com/poiesic/seeker/ai"
	"github.com/poiesic/seeker/ingestion"
	"github.com/poiesic/seeker/reembed"
	"github.com/poiesic/seeker/server"
	redisstore "github.com/poiesic/seeker/storage/redis"
)

func main() {
	app := &cli.App{
		Name:  "seeker",
		Usage: "Semantic search over summarized content",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP search service",
				Action: serveCommand,
				Flags: append(databaseFlags(),
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address",
						Value: ":8080",
					},
					&cli.DurationFlag{
						Name:  "request-timeout",
						Usage: "Per-request deadline for search handling",
						Value: 30 * time.Second,
					},
				),
			},
			{
				Name:      "ingest",
				Usage:     "Ingest a document into the index",
				ArgsUsage: "FILE",
				Action:    ingestCommand,
				Flags: append(databaseFlags(),
					&cli.StringFlag{
						Name:     "ref",
						Usage:    "Stable external reference for the document",
						Required: true,
					},
					&cli.TimestampFlag{
						Name:   "published",
						Usage:  "Publication time (RFC 3339)",
						Layout: time.RFC3339,
					},
				),
			},
			{
				Name:      "search",
				Usage:     "Search the index from the command line",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: append(databaseFlags(),
					&cli.StringFlag{
						Name:  "temporal-filter",
						Usage: "Recency window in days, or \"evergreen\"",
					},
				),
			},
			{
				Name:   "reembed",
				Usage:  "Reembed all content items with new embeddings",
				Action: reembedCommand,
				Flags: append(databaseFlags(),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of items to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N items",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				),
			},
			{
				Name:   "seed",
				Usage:  "Ingest a small set of sample documents for local testing",
				Action: seedCommand,
				Flags:  databaseFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func databaseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "text-embedding-3-large",
		},
		&cli.StringFlag{
			Name:  "extractor-host",
			Usage: "Summary extractor host URL (defaults to embedding-host)",
		},
		&cli.StringFlag{
			Name:  "extractor-model",
			Usage: "Summary extractor model name",
			Value: "qwen2.5:3b",
		},
		&cli.StringFlag{
			Name:  "cache-namespace",
			Usage: "Query cache namespace; rotate it when the embedding model changes",
		},
		&cli.StringFlag{
			Name:  "redis-addr",
			Usage: "Redis address for a shared query cache (empty = embedded cache)",
		},
	}
}

func buildAIConfig(c *cli.Context) (*ai.Config, error) {
	extractorHost := c.String("extractor-host")
	if extractorHost == "" {
		extractorHost = c.String("embedding-host")
	}

	config := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithExtractorHost(extractorHost),
		ai.WithExtractorModel(c.String("extractor-model")),
	)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return config, nil
}

func openDatabase(c *cli.Context) (*seeker.Database, error) {
	aiConfig, err := buildAIConfig(c)
	if err != nil {
		return nil, err
	}

	opts := []seeker.DatabaseOption{
		seeker.WithAIConfig(aiConfig),
		seeker.WithCacheNamespace(c.String("cache-namespace")),
	}

	if addr := c.String("redis-addr"); addr != "" {
		cache, err := redisstore.NewQueryCache(c.Context, addr, c.String("cache-namespace"))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		opts = append(opts, seeker.WithQueryCache(cache))
	}

	db, err := seeker.NewDatabase(c.String("db"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func serveCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}
	defer searcher.Release()

	srv, err := server.New(searcher, server.WithRequestTimeout(c.Duration("request-timeout")))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Run(c.String("addr"))
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one FILE argument")
	}

	rawText, err := os.ReadFile(c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	publishedAt := time.Now().UTC()
	if ts := c.Timestamp("published"); ts != nil && !ts.IsZero() {
		publishedAt = ts.UTC()
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	item, err := pipeline.Ingest(c.Context, ingestion.Submission{
		ExternalRef: c.String("ref"),
		RawText:     string(rawText),
		PublishedAt: publishedAt,
	})
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	// Release (via defer) waits for the background embedding
	fmt.Printf("Ingested %q as %d (%s)\n", item.Title, item.Id, item.Category)
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one QUERY argument")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}
	defer searcher.Release()

	matches, err := searcher.Search(c.Context, c.Args().First(), c.String("temporal-filter"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(matches) == 0 {
		fmt.Println("No matches.")
		return nil
	}

	for i, m := range matches {
		fmt.Printf("%d. %s [%s] similarity=%.3f published=%s\n",
			i+1, m.Item.Title, m.Item.Category, m.Similarity,
			m.Item.PublishedAt.Format("2006-01-02"))
		for _, takeaway := range m.Item.Takeaways {
			fmt.Printf("   - %s\n", takeaway)
		}
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	reembedConfig := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if reembedConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reembedConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reembedConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	reembedder := db.NewReembedder(reembedConfig, os.Stderr)
	if err := reembedder.Run(context.Background()); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}

	return nil
}

var seedSubmissions = []ingestion.Submission{
	{
		ExternalRef: "seed/pasta-guide",
		RawText: "A complete guide to making pasta at home. Use fresh tomatoes " +
			"for the sauce, always salt the water generously, and cook the " +
			"noodles al dente for the best texture.",
	},
	{
		ExternalRef: "seed/kettle-care",
		RawText: "Descaling your kettle is easy: fill it with equal parts water " +
			"and white vinegar, boil once, and rinse twice before the next brew.",
	},
	{
		ExternalRef: "seed/garden-basics",
		RawText: "Starting a vegetable garden begins with good soil. Compost in " +
			"autumn, plan beds for sunlight, and water deeply but infrequently.",
	},
}

func seedCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	now := time.Now().UTC()
	for i, sub := range seedSubmissions {
		sub.PublishedAt = now.AddDate(0, 0, -i*7)
		item, err := pipeline.Ingest(c.Context, sub)
		if err != nil {
			return fmt.Errorf("failed to seed %s: %w", sub.ExternalRef, err)
		}
		fmt.Printf("Seeded %q as %d\n", item.Title, item.Id)
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
