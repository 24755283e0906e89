package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initQueryMetrics() {
	r.PathQueriesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "glsgraph_path_queries_total",
			Help: "Critical-path queries by outcome (success, empty, error)",
		},
		[]string{"status"},
	)

	r.PathQueryDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "glsgraph_path_query_duration_seconds",
			Help:    "Critical-path query duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0},
		},
	)

	r.PathLengthHops = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "glsgraph_path_length_hops",
			Help:    "Number of edges on returned critical paths",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
		},
	)
}
