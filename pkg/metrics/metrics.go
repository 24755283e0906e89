package metrics

import (
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Status maps an error onto the status label
func Status(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordStorageOperation records a storage operation and the rows it touched
func (r *Registry) RecordStorageOperation(operation, status string, duration time.Duration, rows int) {
	r.StorageOperationsTotal.WithLabelValues(operation, status).Inc()
	r.StorageOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if rows > 0 {
		r.StorageRowsTotal.WithLabelValues(operation).Add(float64(rows))
	}
}

// SetGraphSize publishes the current table sizes
func (r *Registry) SetGraphSize(nodes, edges, annotated int64) {
	r.StorageNodesTotal.Set(float64(nodes))
	r.StorageEdgesTotal.Set(float64(edges))
	r.StorageAnnotatedEdgesTotal.Set(float64(annotated))
}

// RecordImportBatch records one batch handed to the store
func (r *Registry) RecordImportBatch(kind string, records int, duration time.Duration) {
	r.ImportBatchesTotal.WithLabelValues(kind).Inc()
	r.ImportRecordsTotal.WithLabelValues(kind).Add(float64(records))
	r.ImportBatchDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordImportSkip counts a record the parser could not interpret
func (r *Registry) RecordImportSkip(kind string) {
	r.ImportSkippedTotal.WithLabelValues(kind).Inc()
}

// RecordImportBytes counts input bytes consumed
func (r *Registry) RecordImportBytes(kind string, n int) {
	r.ImportBytesReadTotal.WithLabelValues(kind).Add(float64(n))
}

// RecordImportRun records a finished import
func (r *Registry) RecordImportRun(kind, status string) {
	r.ImportRunsTotal.WithLabelValues(kind, status).Inc()
}

// RecordPathQuery records a critical-path query. hops is the number of
// edges returned; an empty result is counted with status "empty".
func (r *Registry) RecordPathQuery(status string, duration time.Duration, hops int) {
	if status == StatusSuccess && hops == 0 {
		status = "empty"
	}
	r.PathQueriesTotal.WithLabelValues(status).Inc()
	r.PathQueryDuration.Observe(duration.Seconds())
	if hops > 0 {
		r.PathLengthHops.Observe(float64(hops))
	}
}

// UpdateSystemMetrics refreshes uptime and Go runtime gauges
func (r *Registry) UpdateSystemMetrics() {
	r.UptimeSeconds.Set(time.Since(r.started).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	r.MemoryAllocBytes.Set(float64(m.Alloc))
}

// Handler serves the registry in the prometheus text format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
