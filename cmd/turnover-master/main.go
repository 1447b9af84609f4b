// Command turnover-master consolidates per-category wide-format turnover
// files into deduplicated long-format master tables. It is built to run
// unattended from a scheduler: one invocation processes the whole catalog
// and exits non-zero on the first unrecovered failure.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"turnovercli/internal/config"
	"turnovercli/internal/exporter"
	"turnovercli/internal/infrastructure"
	"turnovercli/internal/metrics"
	"turnovercli/internal/operations"
	"turnovercli/internal/source"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "turnover-master: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env file is fine; env vars still apply.
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to config YAML (optional, env overrides)")
	catalogPath := flag.String("catalog", "", "path to category catalog YAML (optional, built-in default)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer infrastructure.CloseLogFile()

	logger = logger.With(slog.String("run_id", uuid.NewString()))
	slog.SetDefault(logger)

	ctx := context.Background()

	if cfg.Tracing.Enabled {
		shutdown, err := infrastructure.InitTracing(ctx, logger)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				logger.Error("tracing shutdown failed", slog.String("error", err.Error()))
			}
		}()
	}

	catalog, err := config.LoadCatalog(*catalogPath)
	if err != nil {
		return err
	}

	fetcher, err := newFetcher(cfg, logger)
	if err != nil {
		return err
	}

	sink := exporter.NewCSVSink(cfg.Output.Dir, exporter.CSVSinkOptions{
		Prefix: cfg.Output.Prefix,
		BOM:    cfg.Output.BOM,
		Logger: logger,
	})

	if cfg.Metrics.Enabled {
		srv := metrics.Serve(cfg.Metrics.Addr, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	runner := operations.NewRunner(fetcher, sink, operations.RunnerOptions{
		Prefetch: cfg.Pipeline.Prefetch,
		Logger:   logger,
		Tracer:   infrastructure.Tracer(),
	})

	logger.Info("consolidation run started",
		slog.String("source_mode", cfg.Source.Mode),
		slog.String("output_dir", cfg.Output.Dir),
		slog.Int("categories", len(catalog.Categories)))

	if err := runner.RunAll(ctx, catalog.Categories); err != nil {
		logger.Error("consolidation run failed", slog.String("error", err.Error()))
		return err
	}
	return nil
}

// newFetcher builds the source fetcher selected by the config.
func newFetcher(cfg *config.Config, logger *slog.Logger) (operations.Fetcher, error) {
	switch cfg.Source.Mode {
	case "http":
		return source.NewHTTP(cfg.Source.BaseURL, source.HTTPOptions{
			RequestsPerSecond: cfg.Source.RequestsPerSecond,
			Timeout:           cfg.Source.Timeout,
			Logger:            logger,
		}), nil
	case "dir":
		return source.NewDir(cfg.Source.Dir, logger), nil
	default:
		return nil, fmt.Errorf("unknown source mode %q", cfg.Source.Mode)
	}
}
