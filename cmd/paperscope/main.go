// Copyright 2025 Tecla Labs
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
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/teclalabs/paperscope"
	"github.com/teclalabs/paperscope/ai"
	"github.com/teclalabs/paperscope/ingest"
	"github.com/teclalabs/paperscope/server"
	"github.com/urfave/cli/v2"
)

func main() {
	// Optional .env in the working directory
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "paperscope",
		Usage: "Semantic search over a conference paper corpus",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"PAPERSCOPE_LOG_LEVEL"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Fetch the corpus and build the vector index",
				Action: ingestCommand,
				Flags: append(engineFlags(),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of papers to embed in each batch",
						Value: ingest.DefaultBatchSize,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent embedding workers",
					},
				),
			},
			{
				Name:      "search",
				Usage:     "Run a one-shot search against the index",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags:     engineFlags(),
			},
			{
				Name:   "serve",
				Usage:  "Serve the search API over HTTP",
				Action: serveCommand,
				Flags: append(engineFlags(),
					&cli.StringFlag{
						Name:    "addr",
						Usage:   "Address to listen on",
						Value:   ":8080",
						EnvVars: []string{"PAPERSCOPE_ADDR"},
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "data-dir",
			Aliases: []string{"d"},
			Usage:   "Directory holding the vector index and corpus cache",
			Value:   "./paperscope_data",
			EnvVars: []string{"PAPERSCOPE_DATA_DIR"},
		},
		&cli.StringFlag{
			Name:    "host",
			Usage:   "OpenAI-compatible service host URL for embeddings and ranking",
			Value:   "http://localhost:11434/v1",
			EnvVars: []string{"PAPERSCOPE_HOST"},
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			Value:   "embeddinggemma",
			EnvVars: []string{"PAPERSCOPE_EMBEDDING_MODEL"},
		},
		&cli.StringFlag{
			Name:    "ranker-model",
			Usage:   "Ranking model name",
			Value:   "qwen2.5:3b",
			EnvVars: []string{"PAPERSCOPE_RANKER_MODEL"},
		},
		&cli.StringFlag{
			Name:    "token",
			Usage:   "API token for the AI services",
			EnvVars: []string{"PAPERSCOPE_TOKEN"},
		},
		&cli.StringFlag{
			Name:    "origin-url",
			Usage:   "Corpus origin URL",
			Value:   paperscope.DefaultOriginURL,
			EnvVars: []string{"PAPERSCOPE_ORIGIN_URL"},
		},
		&cli.DurationFlag{
			Name:  "corpus-max-age",
			Usage: "How long the cached corpus snapshot stays fresh",
			Value: 24 * time.Hour,
		},
	}
}

func openEngine(c *cli.Context) (*paperscope.Engine, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithRankerModel(c.String("ranker-model")),
		ai.WithToken(c.String("token")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	engine, err := paperscope.NewEngine(c.String("data-dir"),
		paperscope.WithAIConfig(aiConfig),
		paperscope.WithOriginURL(c.String("origin-url")),
		paperscope.WithCorpusMaxAge(c.Duration("corpus-max-age")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open engine: %w", err)
	}
	return engine, nil
}

func ingestCommand(c *cli.Context) error {
	ctx := c.Context

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	corpus := engine.Corpus().GetCorpus(ctx)
	if len(corpus) == 0 {
		return fmt.Errorf("no corpus available from cache or origin")
	}

	opts := []ingest.Option{ingest.WithBatchSize(c.Int("batch-size"))}
	if c.Int("pool-size") > 0 {
		opts = append(opts, ingest.WithPoolSize(c.Int("pool-size")))
	}

	pipeline, err := engine.NewIngestionPipeline(opts...)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	fmt.Fprintf(os.Stderr, "Indexing %d papers\n", len(corpus))
	stats, err := pipeline.IngestCorpus(ctx, corpus)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Indexed: %d, Skipped: %d, Failed: %d\n",
		stats.Indexed, stats.Skipped, stats.Failed)
	if stats.Indexed == 0 {
		return fmt.Errorf("no papers were indexed")
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a query is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	searcher, err := engine.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	results := searcher.Search(c.Context, query)
	if len(results) == 0 {
		fmt.Println("No matching papers found")
		return nil
	}

	for i, result := range results {
		fmt.Printf("%d. %s\n", i+1, result.Title)
		fmt.Printf("   %s\n", result.MatchReason)
		if result.PDF != "" {
			fmt.Printf("   %s\n", result.PDF)
		}
	}
	return nil
}

func serveCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	searcher, err := engine.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	srv, err := server.NewServer(searcher)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	httpSrv := &http.Server{
		Addr:    c.String("addr"),
		Handler: srv.Routes(),
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", httpSrv.Addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
