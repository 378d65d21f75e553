// Copyright 2025 Scriptoria Labs
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

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/scriptoria/loci"
	"github.com/scriptoria/loci/ai"
	"github.com/scriptoria/loci/ai/openai"
	"github.com/scriptoria/loci/ingestion"
	"github.com/scriptoria/loci/rank"
	"github.com/scriptoria/loci/reindex"
	"github.com/scriptoria/loci/storage/badger"
)

func main() {
	// Optional .env next to the binary; flags and real env win.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "loci",
		Usage: "Hybrid ranking research tool for theological texts",
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
				Name:   "ingest",
				Usage:  "Ingest a JSONL file of annotated passages into the corpus",
				Action: ingestCommand,
				Flags: append(corpusFlags(),
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to JSONL file (one passage document per line)",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of passages to embed in each batch",
						Value: 32,
					},
				),
			},
			{
				Name:      "search",
				Usage:     "Rank the corpus against a natural-language query",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append(corpusFlags(),
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Number of results to return",
						Value:   rank.DefaultTopK,
					},
					&cli.StringFlag{
						Name:  "profile",
						Usage: "Scoring profile (additive, weighted)",
						Value: "additive",
					},
					&cli.StringFlag{
						Name:    "weights",
						Usage:   "Path to a YAML file overriding boost weights",
						EnvVars: []string{"LOCI_BOOST_WEIGHTS"},
					},
					&cli.StringSliceFlag{
						Name:    "source",
						Aliases: []string{"s"},
						Usage:   "Restrict scoring to the named sources (repeatable)",
					},
					&cli.BoolFlag{
						Name:  "summary",
						Usage: "Synthesize a grounded summary of the top results",
					},
				),
			},
			{
				Name:   "sources",
				Usage:  "List the sources in the corpus",
				Action: sourcesCommand,
				Flags: []cli.Flag{
					dbFlag(),
				},
			},
			{
				Name:   "reindex",
				Usage:  "Re-embed every passage with a new embedding model",
				Action: reindexCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:    "embedding-host",
						Usage:   "Embedding service host URL",
						Value:   "http://localhost:11434/v1",
						EnvVars: []string{"LOCI_EMBEDDING_HOST"},
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
						EnvVars:  []string{"LOCI_EMBEDDING_MODEL"},
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of passages to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N passages",
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
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB corpus directory",
		Required: true,
		EnvVars:  []string{"LOCI_DB"},
	}
}

// corpusFlags are shared by the commands that need AI services.
func corpusFlags() []cli.Flag {
	return []cli.Flag{
		dbFlag(),
		&cli.StringFlag{
			Name:    "embedding-host",
			Usage:   "Embedding service host URL",
			Value:   "http://localhost:11434/v1",
			EnvVars: []string{"LOCI_EMBEDDING_HOST"},
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			Value:   "embeddinggemma",
			EnvVars: []string{"LOCI_EMBEDDING_MODEL"},
		},
		&cli.StringFlag{
			Name:    "chat-host",
			Usage:   "Chat service host URL (defaults to embedding-host)",
			EnvVars: []string{"LOCI_CHAT_HOST"},
		},
		&cli.StringFlag{
			Name:    "chat-model",
			Usage:   "Chat model for query analysis and summaries",
			Value:   "qwen2.5:3b",
			EnvVars: []string{"LOCI_CHAT_MODEL"},
		},
	}
}

func aiConfigFromFlags(c *cli.Context) (*ai.Config, error) {
	chatHost := c.String("chat-host")
	if chatHost == "" {
		chatHost = c.String("embedding-host")
	}

	config := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithChatHost(chatHost),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithChatModel(c.String("chat-model")),
	)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return config, nil
}

func openLibrary(c *cli.Context, opts ...loci.LibraryOption) (*loci.Library, error) {
	config, err := aiConfigFromFlags(c)
	if err != nil {
		return nil, err
	}

	lib, err := loci.OpenLibrary(c.String("db"), append([]loci.LibraryOption{loci.WithAIConfig(config)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	return lib, nil
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	file, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer file.Close()

	docs, err := ingestion.ReadDocuments(file)
	if err != nil {
		return fmt.Errorf("failed to read documents: %w", err)
	}
	if len(docs) == 0 {
		fmt.Fprintln(os.Stderr, "No documents to ingest")
		return nil
	}

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	pipeline, err := lib.NewIngestionPipeline(ingestion.WithBatchSize(c.Int("batch-size")))
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	added, err := pipeline.Ingest(ctx, docs)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Stored %d passages, waiting for embeddings...\n", len(added))
	pipeline.Wait()
	fmt.Fprintf(os.Stderr, "Ingested %d passages\n", len(added))

	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	profile, err := rank.ProfileByName(c.String("profile"))
	if err != nil {
		return err
	}

	weights := rank.DefaultBoostWeights()
	if path := c.String("weights"); path != "" {
		weights, err = rank.LoadBoostWeights(path)
		if err != nil {
			return fmt.Errorf("failed to load boost weights: %w", err)
		}
	}

	lib, err := openLibrary(c,
		loci.WithScoringProfile(profile),
		loci.WithBoostWeights(weights),
	)
	if err != nil {
		return err
	}
	defer lib.Close()

	res, err := lib.Search(ctx, query, c.StringSlice("source"), rank.WithTopK(c.Int("top-k")))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(res.Results) == 0 {
		fmt.Println("No results.")
		return nil
	}

	for _, r := range res.Results {
		fmt.Printf("%2d. [%.4f] %s", r.Rank, r.Combined, r.Passage.Source)
		if r.Passage.Author != "" {
			fmt.Printf(" (%s)", r.Passage.Author)
		}
		fmt.Printf("\n    sim=%.4f boost=%.4f\n    %s\n", r.Similarity, r.Boost, trimText(r.Passage.Text, 200))
	}

	if c.Bool("summary") {
		summary, err := lib.Summarize(ctx, query, res.Results)
		if err != nil {
			return fmt.Errorf("summarization failed: %w", err)
		}
		fmt.Printf("\n%s\n\nCited:\n", summary.Summary)
		for _, cit := range summary.Citations {
			fmt.Printf("  [%d] %s", cit.Rank, cit.Source)
			if cit.Author != "" {
				fmt.Printf(" (%s)", cit.Author)
			}
			fmt.Println()
		}
	}

	return nil
}

func sourcesCommand(c *cli.Context) error {
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open corpus: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewPassageRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	sources, err := repo.Sources(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}

	if len(sources) == 0 {
		fmt.Println("Corpus is empty.")
		return nil
	}

	for _, src := range sources {
		fmt.Printf("%s", src.Name)
		if src.Author != "" {
			fmt.Printf(" (%s)", src.Author)
		}
		fmt.Printf(" - %d passages\n", src.Passages)
	}

	return nil
}

func reindexCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open corpus: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewPassageRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	reindexConfig := &reindex.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}

	if reindexConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reindexConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reindexConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	reindexer := reindex.NewReindexer(repo, embedder, reindexConfig, os.Stderr)

	fmt.Fprintf(os.Stderr, "Corpus: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if err := reindexer.Run(ctx); err != nil {
		return fmt.Errorf("reindex failed: %w", err)
	}

	return nil
}

func trimText(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
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
