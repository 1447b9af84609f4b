package operations

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"turnovercli/internal/config"
	"turnovercli/internal/dataprocessing"
	"turnovercli/internal/metrics"
)

// Fetcher resolves a source file identifier to a decoded wide table.
type Fetcher interface {
	Fetch(ctx context.Context, key string) (*dataprocessing.WideTable, error)
}

// Sink persists one finished master table per category.
type Sink interface {
	Store(ctx context.Context, category string, table *dataprocessing.AggregateTable) error
}

// Runner executes consolidation runs over a category catalog.
type Runner struct {
	fetcher  Fetcher
	sink     Sink
	logger   *slog.Logger
	tracer   trace.Tracer
	prefetch bool
}

// RunnerOptions configures a Runner.
type RunnerOptions struct {
	// Prefetch overlaps each file's download with the previous file's fold.
	Prefetch bool
	Logger   *slog.Logger
	Tracer   trace.Tracer
}

// NewRunner creates a runner over the given fetcher and sink.
func NewRunner(fetcher Fetcher, sink Sink, opts RunnerOptions) *Runner {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Tracer == nil {
		opts.Tracer = noop.NewTracerProvider().Tracer("operations")
	}
	return &Runner{
		fetcher:  fetcher,
		sink:     sink,
		logger:   opts.Logger,
		tracer:   opts.Tracer,
		prefetch: opts.Prefetch,
	}
}

// RunAll consolidates every category in catalog order and halts on the first
// failure. Tables already stored for earlier categories are left in place.
func (r *Runner) RunAll(ctx context.Context, categories []config.Category) error {
	ctx, span := r.tracer.Start(ctx, "run",
		trace.WithAttributes(attribute.Int("categories", len(categories))))
	defer span.End()

	start := time.Now()
	for _, cat := range categories {
		if err := r.runCategory(ctx, cat); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("category %s: %w", cat.Name, err)
		}
	}
	metrics.RunDuration.Set(time.Since(start).Seconds())

	r.logger.InfoContext(ctx, "all categories completed",
		slog.Int("categories", len(categories)),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// runCategory reduces one category's source files and stores the result.
func (r *Runner) runCategory(ctx context.Context, cat config.Category) error {
	ctx, span := r.tracer.Start(ctx, "category",
		trace.WithAttributes(
			attribute.String("category", cat.Name),
			attribute.Int("files", len(cat.Files))))
	defer span.End()

	logger := r.logger.With(slog.String("category", cat.Name))
	start := time.Now()

	logger.InfoContext(ctx, "category started", slog.Int("files", len(cat.Files)))

	table, stats, err := dataprocessing.Reduce(ctx, cat.Files, r.fetcher.Fetch, dataprocessing.ReduceOptions{
		Prefetch: r.prefetch,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	metrics.FilesProcessed.WithLabelValues(cat.Name).Add(float64(len(stats.Files)))
	metrics.RowsIngested.WithLabelValues(cat.Name).Add(float64(stats.RowsIngested))
	metrics.RowsDropped.WithLabelValues(cat.Name).Add(float64(stats.RowsDropped))

	if stats.RowsDropped > 0 {
		logger.WarnContext(ctx, "rows dropped during value coercion",
			slog.Int("dropped", stats.RowsDropped))
	}

	if err := r.sink.Store(ctx, cat.Name, table); err != nil {
		return err
	}
	metrics.CategoriesCompleted.Inc()

	span.SetAttributes(
		attribute.Int("rows", table.Len()),
		attribute.Int("rows_dropped", stats.RowsDropped))

	logger.InfoContext(ctx, "category completed",
		slog.Int("rows", table.Len()),
		slog.Int("rows_ingested", stats.RowsIngested),
		slog.Int("rows_dropped", stats.RowsDropped),
		slog.Duration("duration", time.Since(start)))
	return nil
}
