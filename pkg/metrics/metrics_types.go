// Package metrics exposes glsgraph's prometheus instruments.
//
// Every Registry owns a private prometheus.Registry, so tests and multiple
// stores in one process never collide on registration.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Import kinds used as the "kind" label
const (
	KindNode  = "node"
	KindEdge  = "edge"
	KindDelay = "delay"
)

// Status label values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Registry holds all metrics for the application
type Registry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Storage Metrics
	StorageNodesTotal          prometheus.Gauge
	StorageEdgesTotal          prometheus.Gauge
	StorageAnnotatedEdgesTotal prometheus.Gauge
	StorageOperationsTotal     *prometheus.CounterVec
	StorageOperationDuration   *prometheus.HistogramVec
	StorageRowsTotal           *prometheus.CounterVec

	// Import Metrics
	ImportRunsTotal      *prometheus.CounterVec
	ImportRecordsTotal   *prometheus.CounterVec
	ImportBatchesTotal   *prometheus.CounterVec
	ImportBatchDuration  *prometheus.HistogramVec
	ImportSkippedTotal   *prometheus.CounterVec
	ImportBytesReadTotal *prometheus.CounterVec

	// Path Query Metrics
	PathQueriesTotal  *prometheus.CounterVec
	PathQueryDuration prometheus.Histogram
	PathLengthHops    prometheus.Histogram

	// System Metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge

	registry *prometheus.Registry
	started  time.Time
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		started:  time.Now(),
	}

	r.initHTTPMetrics()
	r.initStorageMetrics()
	r.initImportMetrics()
	r.initQueryMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
