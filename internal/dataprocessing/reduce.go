package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// FetchFunc resolves one source file identifier to a decoded wide table.
type FetchFunc func(ctx context.Context, key string) (*WideTable, error)

// FileStats reports the observed shape of one processed file.
type FileStats struct {
	Key        string
	RawRows    int
	RawCols    int
	MeltedRows int
	CleanRows  int
	Dropped    int
}

// ReduceStats accumulates per-file shape reporting across one category run.
type ReduceStats struct {
	Files        []FileStats
	RowsIngested int
	RowsDropped  int
}

func (s *ReduceStats) observe(fs FileStats) {
	s.Files = append(s.Files, fs)
	s.RowsIngested += fs.CleanRows
	s.RowsDropped += fs.Dropped
}

// ReduceOptions configures a streaming reduction.
type ReduceOptions struct {
	// Prefetch overlaps the next file's download with the current file's
	// fold. The fold itself stays strictly sequential in file order, so the
	// result is unchanged and peak memory grows by at most one extra
	// decoded file.
	Prefetch bool
	Logger   *slog.Logger
}

// Reduce runs the streaming merge-reduction over the given source files,
// strictly in order: fetch, reshape, clean, aggregate, then fold the
// per-file aggregate into the running accumulator. Each file's intermediate
// tables are released before the next fetch, so peak memory is bounded by
// the largest single file plus the accumulator. Any fetch, shape, or date
// failure aborts the run; no partial accumulator is returned.
func Reduce(ctx context.Context, keys []string, fetch FetchFunc, opts ReduceOptions) (*AggregateTable, *ReduceStats, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	stats := &ReduceStats{}
	if len(keys) == 0 {
		return NewAggregateTable(), stats, nil
	}
	if opts.Prefetch {
		return reducePrefetch(ctx, keys, fetch, logger, stats)
	}

	var acc *AggregateTable
	for _, key := range keys {
		table, err := fetch(ctx, key)
		if err != nil {
			return nil, nil, fmt.Errorf("fetch %s: %w", key, err)
		}

		agg, fs, err := processFile(table, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("process %s: %w", key, err)
		}
		stats.observe(fs)

		// The fetched table, its cells, and the per-file aggregate are all
		// unreachable past this point.
		acc = fold(acc, agg)

		logger.Info("folded file into accumulator",
			slog.String("key", key),
			slog.Int("accumulator_rows", acc.Len()))
	}
	return acc, stats, nil
}

// processFile runs one wide table through reshape, clean, and aggregate,
// logging its shape before and after the unpivot.
func processFile(table *WideTable, logger *slog.Logger) (*AggregateTable, FileStats, error) {
	fs := FileStats{
		Key:     table.Key,
		RawRows: len(table.Rows),
		RawCols: len(table.Header),
	}
	logger.Info("raw shape",
		slog.String("key", table.Key),
		slog.Int("rows", fs.RawRows),
		slog.Int("cols", fs.RawCols))

	cells, err := Reshape(table)
	if err != nil {
		return nil, fs, err
	}
	fs.MeltedRows = len(cells)

	cleaned, err := Clean(cells)
	if err != nil {
		return nil, fs, err
	}
	fs.CleanRows = len(cleaned.Records)
	fs.Dropped = cleaned.Dropped

	logger.Info("melted shape",
		slog.String("key", table.Key),
		slog.Int("melted_rows", fs.MeltedRows),
		slog.Int("clean_rows", fs.CleanRows),
		slog.Int("dropped_rows", fs.Dropped))

	return Aggregate(cleaned.Records), fs, nil
}

// reducePrefetch is the bounded-concurrency variant: one goroutine fetches
// ahead through a depth-1 buffer while the consumer folds sequentially.
func reducePrefetch(ctx context.Context, keys []string, fetch FetchFunc, logger *slog.Logger, stats *ReduceStats) (*AggregateTable, *ReduceStats, error) {
	type fetched struct {
		key   string
		table *WideTable
	}

	g, ctx := errgroup.WithContext(ctx)
	tables := make(chan fetched, 1)

	g.Go(func() error {
		defer close(tables)
		for _, key := range keys {
			table, err := fetch(ctx, key)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", key, err)
			}
			select {
			case tables <- fetched{key: key, table: table}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	var acc *AggregateTable
	g.Go(func() error {
		for f := range tables {
			agg, fs, err := processFile(f.table, logger)
			if err != nil {
				return fmt.Errorf("process %s: %w", f.key, err)
			}
			stats.observe(fs)
			acc = fold(acc, agg)

			logger.Info("folded file into accumulator",
				slog.String("key", f.key),
				slog.Int("accumulator_rows", acc.Len()))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if acc == nil {
		acc = NewAggregateTable()
	}
	return acc, stats, nil
}
