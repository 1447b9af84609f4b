package dataprocessing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"turnovercli/internal/errors"
)

// dateLayouts are the date representations accepted for the date axis.
// Source files are machine-generated, so ad hoc formats beyond these are not
// a supported scenario: a date that matches none of them fails the file.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// CleanResult carries the cleaned records together with the number of rows
// excluded by numeric coercion.
type CleanResult struct {
	Records []Record
	Dropped int
}

// Clean coerces reshaped cells into records. Per cell: the date is parsed
// (failure aborts the whole batch), the ticker is normalized, and the value
// is coerced to a finite float64 (failure drops the row and counts it).
func Clean(cells []Cell) (CleanResult, error) {
	result := CleanResult{Records: make([]Record, 0, len(cells))}

	for _, c := range cells {
		date, err := parseDate(c.DateRaw)
		if err != nil {
			return CleanResult{}, errors.NewDateParseError(
				fmt.Sprintf("date column failed to parse at value %q", c.DateRaw), err)
		}

		turnover, ok := parseTurnover(c.Value)
		if !ok {
			result.Dropped++
			continue
		}

		result.Records = append(result.Records, Record{
			Date:       date,
			Ticker:     c.Ticker,
			TickerNorm: NormalizeTicker(c.Ticker),
			Turnover:   turnover,
		})
	}
	return result, nil
}

// parseDate parses a raw date cell, trying each accepted layout in order.
// Parsed dates are truncated to UTC midnight so they are stable as map keys.
func parseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date value")
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format: %q", s)
}

// parseTurnover coerces a raw value cell into a finite float64. Thousands
// separators and surrounding whitespace are tolerated; anything else that
// fails to parse, and non-finite results, report false.
func parseTurnover(raw string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
