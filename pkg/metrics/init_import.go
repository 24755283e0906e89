package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initImportMetrics() {
	r.ImportRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "glsgraph_import_runs_total",
			Help: "Completed import runs by input kind and outcome",
		},
		[]string{"kind", "status"},
	)

	r.ImportRecordsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "glsgraph_import_records_total",
			Help: "Parsed records handed to the store",
		},
		[]string{"kind"},
	)

	r.ImportBatchesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "glsgraph_import_batches_total",
			Help: "Batches written to the store",
		},
		[]string{"kind"},
	)

	r.ImportBatchDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "glsgraph_import_batch_duration_seconds",
			Help:    "Time to write one batch to the store",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
		[]string{"kind"},
	)

	r.ImportSkippedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "glsgraph_import_skipped_records_total",
			Help: "Complete records the parser could not interpret",
		},
		[]string{"kind"},
	)

	r.ImportBytesReadTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "glsgraph_import_bytes_read_total",
			Help: "Input bytes consumed by the parsers",
		},
		[]string{"kind"},
	)
}
