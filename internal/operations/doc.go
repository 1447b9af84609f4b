// Package operations orchestrates consolidation runs. A run walks the
// category catalog in order; each category is reduced from its source files
// into one deduplicated master table and stored. The first unrecovered
// failure halts the run so a scheduler retries the whole batch.
package operations
