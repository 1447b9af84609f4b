package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"turnovercli/internal/dataprocessing"
	"turnovercli/internal/errors"
)

// masterHeader is the column layout of every master output file.
var masterHeader = []string{"date", "ticker", "ticker_norm", "turnover"}

// CSVSink writes one master CSV file per category.
type CSVSink struct {
	dir    string
	prefix string
	bom    bool
	logger *slog.Logger
}

// CSVSinkOptions configures a CSV sink.
type CSVSinkOptions struct {
	// Prefix is prepended to the category name in the output filename.
	Prefix string
	// BOM adds a UTF-8 BOM for Excel compatibility.
	BOM    bool
	Logger *slog.Logger
}

// NewCSVSink creates a sink writing into the given directory.
func NewCSVSink(dir string, opts CSVSinkOptions) *CSVSink {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &CSVSink{dir: dir, prefix: opts.Prefix, bom: opts.BOM, logger: opts.Logger}
}

// Path returns the output path a category's table is stored at.
func (s *CSVSink) Path(category string) string {
	return filepath.Join(s.dir, s.prefix+category+".csv")
}

// Store persists a finished aggregate table under a name derived from the
// category. An empty table produces a header-only file.
func (s *CSVSink) Store(ctx context.Context, category string, table *dataprocessing.AggregateTable) error {
	if err := ctx.Err(); err != nil {
		return errors.NewSinkError("store cancelled", err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return errors.NewSinkError(fmt.Sprintf("failed to create output directory %s", s.dir), err)
	}

	path := s.Path(category)
	file, err := os.Create(path)
	if err != nil {
		return errors.NewSinkError(fmt.Sprintf("failed to create %s", path), err)
	}
	defer file.Close()

	if s.bom {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return errors.NewSinkError("failed to write BOM", err)
		}
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(masterHeader); err != nil {
		return errors.NewSinkError("failed to write header", err)
	}

	records := table.Records()
	for i, r := range records {
		row := []string{
			r.Date.Format("2006-01-02"),
			r.Ticker,
			r.TickerNorm,
			formatTurnover(r.Turnover),
		}
		if err := writer.Write(row); err != nil {
			return errors.NewSinkError(fmt.Sprintf("failed to write record %d", i), err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.NewSinkError(fmt.Sprintf("failed to flush %s", path), err)
	}

	info, err := file.Stat()
	if err == nil {
		s.logger.Info("stored master table",
			slog.String("category", category),
			slog.String("path", path),
			slog.Int("rows", len(records)),
			slog.Int64("bytes", info.Size()))
	}
	return nil
}
