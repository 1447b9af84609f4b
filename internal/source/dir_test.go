package source

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"turnovercli/internal/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDirFetch(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "C_ATM_small_turnover.csv")
	require.NoError(t, os.WriteFile(path, []byte("date,AAPL\n2024-01-02,100\n"), 0644))

	fetcher := NewDir(root, testLogger())
	table, err := fetcher.Fetch(context.Background(), "C_ATM_small_turnover.csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"date", "AAPL"}, table.Header)
	require.Len(t, table.Rows, 1)
}

func TestDirFetchSubdirectoryKey(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "turnover"), 0755))
	path := filepath.Join(root, "turnover", "P_OTM_large_turnover.csv")
	require.NoError(t, os.WriteFile(path, []byte("date,MSFT\n2024-01-02,10\n"), 0644))

	fetcher := NewDir(root, testLogger())
	table, err := fetcher.Fetch(context.Background(), "turnover/P_OTM_large_turnover.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"date", "MSFT"}, table.Header)
}

func TestDirFetchMissingFile(t *testing.T) {
	fetcher := NewDir(t.TempDir(), testLogger())

	_, err := fetcher.Fetch(context.Background(), "missing.csv")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeFetch))
}

func TestDirFetchCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := NewDir(t.TempDir(), testLogger())
	_, err := fetcher.Fetch(ctx, "anything.csv")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeFetch))
}
