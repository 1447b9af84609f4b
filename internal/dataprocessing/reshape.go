package dataprocessing

import (
	"turnovercli/internal/errors"
)

// Reshape unpivots a wide table into one cell per (row, ticker column) pair.
// Column 0 is treated as the date axis by position, never by header name.
// Every cell is emitted, including blanks; cleaning happens downstream, so
// the output always has exactly rows x (columns-1) entries. Rows shorter
// than the header are padded with empty cells to preserve that invariant.
func Reshape(table *WideTable) ([]Cell, error) {
	if len(table.Header) == 0 {
		return nil, errors.NewShapeError("table has no header row").
			WithContext("key", table.Key)
	}
	if len(table.Header) < 2 {
		return nil, errors.NewShapeError("table has a date axis but no data columns").
			WithContext("key", table.Key)
	}

	cells := make([]Cell, 0, len(table.Rows)*(len(table.Header)-1))
	for _, row := range table.Rows {
		var dateRaw string
		if len(row) > 0 {
			dateRaw = row[0]
		}
		for j := 1; j < len(table.Header); j++ {
			var value string
			if j < len(row) {
				value = row[j]
			}
			cells = append(cells, Cell{
				DateRaw: dateRaw,
				Ticker:  table.Header[j],
				Value:   value,
			})
		}
	}
	return cells, nil
}
