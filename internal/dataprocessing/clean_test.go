package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"turnovercli/internal/errors"
)

func TestCleanValidCells(t *testing.T) {
	cells := []Cell{
		{DateRaw: "2024-01-02", Ticker: "aapl-us", Value: "1500.5"},
		{DateRaw: "2024-01-03", Ticker: "MSFT", Value: "2,300,100"},
	}

	result, err := Clean(cells)
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.Zero(t, result.Dropped)

	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), result.Records[0].Date)
	assert.Equal(t, "aapl-us", result.Records[0].Ticker)
	assert.Equal(t, "AAPL", result.Records[0].TickerNorm)
	assert.Equal(t, 1500.5, result.Records[0].Turnover)

	assert.Equal(t, 2300100.0, result.Records[1].Turnover, "thousands separators stripped")
}

func TestCleanDropsUnparseableValues(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "alphabetic value", value: "n/a"},
		{name: "empty cell", value: ""},
		{name: "whitespace only", value: "   "},
		{name: "nan literal", value: "NaN"},
		{name: "infinity literal", value: "+Inf"},
		{name: "mixed garbage", value: "12x4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := []Cell{
				{DateRaw: "2024-01-02", Ticker: "AAPL", Value: tt.value},
				{DateRaw: "2024-01-02", Ticker: "MSFT", Value: "100"},
			}

			result, err := Clean(cells)
			require.NoError(t, err)
			assert.Len(t, result.Records, 1, "bad value dropped, not defaulted")
			assert.Equal(t, 1, result.Dropped)
			assert.Equal(t, "MSFT", result.Records[0].Ticker)
		})
	}
}

func TestCleanRowCountNeverGrows(t *testing.T) {
	cells := []Cell{
		{DateRaw: "2024-01-02", Ticker: "A", Value: "1"},
		{DateRaw: "2024-01-02", Ticker: "B", Value: "x"},
		{DateRaw: "2024-01-02", Ticker: "C", Value: ""},
	}

	result, err := Clean(cells)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(result.Records), len(cells))
	assert.Equal(t, len(cells), len(result.Records)+result.Dropped)
}

func TestCleanDateLayouts(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected time.Time
	}{
		{name: "iso date", raw: "2024-01-02", expected: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{name: "slash date", raw: "2024/01/02", expected: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{name: "us date", raw: "01/02/2024", expected: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{name: "datetime truncated to midnight", raw: "2024-01-02 15:30:00", expected: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339 truncated to midnight", raw: "2024-01-02T15:30:00Z", expected: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{name: "padded with whitespace", raw: "  2024-01-02 ", expected: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Clean([]Cell{{DateRaw: tt.raw, Ticker: "AAPL", Value: "1"}})
			require.NoError(t, err)
			require.Len(t, result.Records, 1)
			assert.True(t, tt.expected.Equal(result.Records[0].Date))
		})
	}
}

func TestCleanDateParseFailureAbortsBatch(t *testing.T) {
	cells := []Cell{
		{DateRaw: "2024-01-02", Ticker: "AAPL", Value: "100"},
		{DateRaw: "second of January", Ticker: "AAPL", Value: "200"},
	}

	_, err := Clean(cells)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeDateParse),
		"a malformed date fails the whole file, not just the row")
}

func TestCleanEmptyDateAbortsBatch(t *testing.T) {
	_, err := Clean([]Cell{{DateRaw: "", Ticker: "AAPL", Value: "100"}})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeDateParse))
}
