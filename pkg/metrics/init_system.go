package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSystemMetrics() {
	r.UptimeSeconds = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "glsgraph_uptime_seconds",
			Help: "Seconds since the glsgraph process registered its metrics",
		},
	)

	r.GoRoutines = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "glsgraph_goroutines",
			Help: "Goroutines running in the glsgraph process",
		},
	)

	r.MemoryAllocBytes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "glsgraph_memory_alloc_bytes",
			Help: "Heap bytes held by the process, dominated by import batches and path frontiers",
		},
	)
}
