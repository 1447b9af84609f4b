package dataprocessing

// Aggregate sums turnover by (date, ticker, ticker_norm), producing one row
// per unique key. Summation order is unspecified; callers must not depend on
// it beyond floating-point tolerance.
func Aggregate(records []Record) *AggregateTable {
	table := NewAggregateTable()
	for _, r := range records {
		table.add(Key{Date: r.Date, Ticker: r.Ticker, TickerNorm: r.TickerNorm}, r.Turnover)
	}
	return table
}

// fold merges a per-file aggregate into the accumulator by re-aggregating
// the union of both tables' rows through the same keying as Aggregate.
// The returned table replaces the accumulator; a nil accumulator is seeded
// directly from the incoming table.
func fold(acc, next *AggregateTable) *AggregateTable {
	if acc == nil {
		return next
	}
	union := make([]Record, 0, acc.Len()+next.Len())
	union = append(union, acc.records()...)
	union = append(union, next.records()...)
	return Aggregate(union)
}
