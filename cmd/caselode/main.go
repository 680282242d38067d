// Copyright 2026 Caselode Authors
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
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caselode/caselode"
	"github.com/caselode/caselode/ai"
	"github.com/caselode/caselode/ai/openai"
	"github.com/caselode/caselode/core"
	"github.com/caselode/caselode/ingestion"
	"github.com/caselode/caselode/reembed"
	"github.com/caselode/caselode/search"
	"github.com/caselode/caselode/storage/badger"
	"github.com/urfave/cli/v2"
)

func embeddingFlags() []cli.Flag {
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
			Name:     "embedding-model",
			Usage:    "Embedding model name",
			Required: true,
		},
	}
}

func reembedFlags() []cli.Flag {
	return append(embeddingFlags(),
		&cli.IntFlag{
			Name:  "batch-size",
			Usage: "Number of records to process in each batch",
			Value: 100,
		},
		&cli.IntFlag{
			Name:  "report-interval",
			Usage: "Report progress every N records",
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
	)
}

func main() {
	app := &cli.App{
		Name:  "caselode",
		Usage: "Hybrid retrieval engine for court judgments",
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
				Name:      "ingest",
				Usage:     "Ingest judgment text files into the corpus",
				ArgsUsage: "FILE [FILE...]",
				Action:    ingestCommand,
				Flags:     embeddingFlags(),
			},
			{
				Name:      "statutes",
				Usage:     "Load statute sections from a JSON file",
				ArgsUsage: "FILE",
				Action:    statutesCommand,
				Flags:     embeddingFlags(),
			},
			{
				Name:      "query",
				Usage:     "Run a hybrid retrieval query and print the context bundle",
				ArgsUsage: "QUERY...",
				Action:    queryCommand,
				Flags: append(embeddingFlags(),
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of chunks to retrieve",
						Value: 20,
					},
				),
			},
			{
				Name:   "reembed",
				Usage:  "Reembed all judgment chunks with new embeddings",
				Action: reembedCommand,
				Flags:  reembedFlags(),
			},
			{
				Name:   "reembed-statutes",
				Usage:  "Reembed all statute sections with new embeddings",
				Action: reembedStatutesCommand,
				Flags:  reembedFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openCorpus(c *cli.Context) (*caselode.Corpus, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	corpus, err := caselode.OpenCorpus(c.String("db"), caselode.WithAIConfig(aiConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	return corpus, nil
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one judgment file is required")
	}

	corpus, err := openCorpus(c)
	if err != nil {
		return err
	}
	defer corpus.Close()

	pipeline, err := corpus.NewIngestionPipeline()
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	ctx := context.Background()
	for _, path := range c.Args().Slice() {
		text, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		judgmentID, chunks, err := pipeline.IngestJudgment(ctx, &ingestion.Judgment{Text: string(text)})
		if err != nil {
			return fmt.Errorf("failed to ingest %s: %w", path, err)
		}

		fmt.Fprintf(os.Stderr, "Ingested %s: judgment %d, %d chunks\n", path, judgmentID, chunks)
	}

	return nil
}

// statuteFile is the on-disk JSON shape of a statute knowledge base.
type statuteFile struct {
	Sections []struct {
		Act      string `json:"act"`
		Number   string `json:"number"`
		Title    string `json:"title"`
		Contents string `json:"contents"`
	} `json:"sections"`
}

func statutesCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one statute JSON file is required")
	}

	data, err := os.ReadFile(c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to read statute file: %w", err)
	}

	var file statuteFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse statute file: %w", err)
	}
	if len(file.Sections) == 0 {
		return fmt.Errorf("statute file contains no sections")
	}

	corpus, err := openCorpus(c)
	if err != nil {
		return err
	}
	defer corpus.Close()

	pipeline, err := corpus.NewIngestionPipeline()
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	sections := make([]*core.StatuteSection, len(file.Sections))
	for i, s := range file.Sections {
		sections[i] = &core.StatuteSection{
			Act:      s.Act,
			Number:   s.Number,
			Title:    s.Title,
			Contents: s.Contents,
		}
	}

	count, err := pipeline.LoadStatutes(context.Background(), sections...)
	if err != nil {
		return fmt.Errorf("failed to load statutes: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Loaded %d statute sections\n", count)
	return nil
}

func queryCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("a query is required")
	}
	query := strings.Join(c.Args().Slice(), " ")

	corpus, err := openCorpus(c)
	if err != nil {
		return err
	}
	defer corpus.Close()

	ctx := context.Background()
	if err := corpus.RebuildIndex(ctx); err != nil {
		return fmt.Errorf("failed to build lexical index: %w", err)
	}

	retriever, err := corpus.NewRetriever(search.WithTopK(c.Int("top-k")))
	if err != nil {
		return fmt.Errorf("failed to create retriever: %w", err)
	}

	bundle, err := retriever.Retrieve(ctx, query)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Retrieved %d chunks, %d dark zones, truncated=%v\n",
		len(bundle.Results), len(bundle.DarkZones), bundle.Truncated)
	fmt.Println(bundle.Text())
	return nil
}

func reembedCommand(c *cli.Context) error {
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewChunkRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	embedder, config, err := reembedSetup(c)
	if err != nil {
		return err
	}

	reembedder := reembed.NewChunkReembedder(repo, embedder, config, os.Stderr)
	if err := reembedder.Run(context.Background()); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	return nil
}

func reembedStatutesCommand(c *cli.Context) error {
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo := badger.NewStatuteRepository(backend)
	defer repo.Close()

	embedder, config, err := reembedSetup(c)
	if err != nil {
		return err
	}

	reembedder := reembed.NewSectionReembedder(repo, embedder, config, os.Stderr)
	if err := reembedder.Run(context.Background()); err != nil {
		return fmt.Errorf("statute reembedding failed: %w", err)
	}
	return nil
}

// reembedSetup builds the embedder and reembed config shared by the
// reembed commands.
func reembedSetup(c *cli.Context) (ai.Embedder, *reembed.Config, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	config := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}

	if config.BatchSize <= 0 {
		return nil, nil, fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return nil, nil, fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return nil, nil, fmt.Errorf("max-retries must be greater than 0")
	}

	return embedder, config, nil
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
