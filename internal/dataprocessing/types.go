package dataprocessing

import (
	"sort"
	"time"
)

// WideTable holds one decoded source file. The first header column is the
// date axis regardless of what it is called; every remaining column is a raw
// ticker whose cells carry turnover values.
type WideTable struct {
	Key    string
	Header []string
	Rows   [][]string
}

// Cell is a single unpivoted observation before cleaning. Values are kept as
// raw strings; numeric coercion happens in Clean.
type Cell struct {
	DateRaw string
	Ticker  string
	Value   string
}

// Record is one cleaned long-format observation.
type Record struct {
	Date       time.Time
	Ticker     string
	TickerNorm string
	Turnover   float64
}

// Key identifies one aggregated row. The raw ticker stays a key component
// alongside its normalized form, so two raw labels that normalize identically
// are still aggregated separately.
type Key struct {
	Date       time.Time
	Ticker     string
	TickerNorm string
}

// AggregateTable maps aggregate keys to summed turnover. It is the
// accumulator type threaded through the streaming fold: exactly one writer
// owns it at a time.
type AggregateTable struct {
	sums map[Key]float64
}

// NewAggregateTable creates an empty aggregate table.
func NewAggregateTable() *AggregateTable {
	return &AggregateTable{sums: make(map[Key]float64)}
}

// Len returns the number of unique aggregate keys.
func (t *AggregateTable) Len() int {
	return len(t.sums)
}

// Sum returns the summed turnover for the given key.
func (t *AggregateTable) Sum(k Key) (float64, bool) {
	v, ok := t.sums[k]
	return v, ok
}

// Records materializes the table as records sorted by date, then raw ticker,
// then normalized ticker, for deterministic output.
func (t *AggregateTable) Records() []Record {
	records := t.records()
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.Before(records[j].Date)
		}
		if records[i].Ticker != records[j].Ticker {
			return records[i].Ticker < records[j].Ticker
		}
		return records[i].TickerNorm < records[j].TickerNorm
	})
	return records
}

// records materializes the table without sorting; used by the fold step
// where row order is irrelevant.
func (t *AggregateTable) records() []Record {
	records := make([]Record, 0, len(t.sums))
	for k, v := range t.sums {
		records = append(records, Record{
			Date:       k.Date,
			Ticker:     k.Ticker,
			TickerNorm: k.TickerNorm,
			Turnover:   v,
		})
	}
	return records
}

func (t *AggregateTable) add(k Key, turnover float64) {
	t.sums[k] += turnover
}
