package health

import (
	"context"
	"runtime"
)

// DatabaseCheck creates a health check for database connectivity
func DatabaseCheck(ping func(ctx context.Context) error) CheckFunc {
	return func(ctx context.Context) Check {
		check := Check{Name: "database"}

		if err := ping(ctx); err != nil {
			check.Status = StatusUnhealthy
			check.Message = err.Error()
		} else {
			check.Status = StatusHealthy
			check.Message = "Connected"
		}

		return check
	}
}

// GraphCheck reports the stored graph size. An empty graph is degraded
// since every path query would come back empty; a graph with no delay
// annotations is degraded for the same reason.
func GraphCheck(size func(ctx context.Context) (nodes, edges, annotated int64, err error)) CheckFunc {
	return func(ctx context.Context) Check {
		check := Check{Name: "graph"}

		nodes, edges, annotated, err := size(ctx)
		if err != nil {
			check.Status = StatusUnhealthy
			check.Message = err.Error()
			return check
		}
		check.Details = map[string]any{
			"nodes":           nodes,
			"edges":           edges,
			"annotated_edges": annotated,
		}

		switch {
		case edges == 0:
			check.Status = StatusDegraded
			check.Message = "No netlist imported"
		case annotated == 0:
			check.Status = StatusDegraded
			check.Message = "No delays annotated"
		default:
			check.Status = StatusHealthy
			check.Message = "Graph loaded"
		}
		return check
	}
}

// MemoryCheck creates a health check for memory usage
func MemoryCheck(getUsage func() (alloc, sys uint64)) CheckFunc {
	return func(context.Context) Check {
		check := Check{
			Name:    "memory",
			Details: make(map[string]any),
		}

		alloc, sys := getUsage()

		check.Details["alloc_bytes"] = alloc
		check.Details["sys_bytes"] = sys

		if sys > 0 && float64(alloc)/float64(sys)*100 > 90 {
			check.Status = StatusDegraded
			check.Message = "High memory usage"
		} else {
			check.Status = StatusHealthy
			check.Message = "Memory usage normal"
		}

		return check
	}
}

// RuntimeMemory reads heap usage from the Go runtime
func RuntimeMemory() (alloc, sys uint64) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc, m.Sys
}
