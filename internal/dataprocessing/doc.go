// Package dataprocessing implements the core reshape-normalize-aggregate-merge
// pipeline for turnover master consolidation.
//
// # Architecture
//
// The package is organized as a chain of small, independently testable steps:
//
// 1. NormalizeTicker: maps a raw instrument label to its canonical form
// 2. Reshape: unpivots one wide table (date rows x ticker columns) into cells
// 3. Clean: coerces cells into dated, numeric records, dropping bad values
// 4. Aggregate: sums turnover by (date, ticker, ticker_norm)
// 5. Reduce: folds per-file aggregates into a running accumulator, one file
// at a time
//
// # Data Flow
//
//	source file → Reshape → Clean → Aggregate → fold into accumulator
//
// Reduce processes files strictly in the given order and releases each file's
// intermediate tables before fetching the next, so peak memory stays bounded
// by one decoded file plus the accumulator rather than the sum of all inputs.
//
// # Error Handling
//
// A cell whose value fails numeric coercion is dropped and counted, never an
// error. A date column that fails to parse aborts the whole file, and any
// fetch, shape, or date failure aborts the category run with no partial
// accumulator emitted.
package dataprocessing
