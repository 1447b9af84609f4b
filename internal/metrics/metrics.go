// Package metrics exposes run counters over an optional HTTP listener so a
// scheduler or scrape target can watch consolidation progress.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// FilesProcessed counts source files folded into a category accumulator.
	FilesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "turnover_files_processed_total",
			Help: "Number of source files fetched and folded, by category.",
		},
		[]string{"category"},
	)

	// RowsIngested counts records that survived cleaning and reached the
	// aggregate, by category.
	RowsIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "turnover_rows_ingested_total",
			Help: "Number of cleaned records aggregated, by category.",
		},
		[]string{"category"},
	)

	// RowsDropped counts melted cells excluded because their value could not
	// be coerced to a number.
	RowsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "turnover_rows_dropped_total",
			Help: "Number of cells dropped during value coercion, by category.",
		},
		[]string{"category"},
	)

	// CategoriesCompleted counts categories whose master table was written.
	CategoriesCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "turnover_categories_completed_total",
			Help: "Number of categories consolidated and stored.",
		},
	)

	// RunDuration records the wall time of the last full run.
	RunDuration = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "turnover_run_duration_seconds",
			Help: "Duration of the last consolidation run in seconds.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		FilesProcessed,
		RowsIngested,
		RowsDropped,
		CategoriesCompleted,
		RunDuration,
	)
}
