package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"turnovercli/internal/dataprocessing"
	"turnovercli/internal/errors"
)

// Dir fetches source files from a local directory, for runs where the
// bucket is mounted or pre-synced next to the binary.
type Dir struct {
	root   string
	logger *slog.Logger
}

// NewDir creates a directory-backed fetcher rooted at the given path.
func NewDir(root string, logger *slog.Logger) *Dir {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dir{root: root, logger: logger}
}

// Fetch reads and decodes one source file by its catalog key.
func (d *Dir) Fetch(ctx context.Context, key string) (*dataprocessing.WideTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewFetchError("fetch cancelled", err)
	}

	path := filepath.Join(d.root, filepath.FromSlash(key))
	d.logger.Info("reading source file", slog.String("path", path))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewFetchError(fmt.Sprintf("failed to read %s", path), err)
	}
	return decodeTable(key, data)
}
