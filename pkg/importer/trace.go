package importer

import (
	"context"
	"time"

	"github.com/dd0wney/glsgraph/pkg/logging"
	"github.com/dd0wney/glsgraph/pkg/model"
)

// PathFinder answers critical-path queries
type PathFinder interface {
	FindMaxDelayPath(ctx context.Context, start, end string, maxDepth int) ([]model.Edge, error)
}

// Path is a traced critical path
type Path struct {
	Edges []model.Edge `json:"edges"`
	Total float64      `json:"total"`
}

// Empty reports whether no path was found
func (p Path) Empty() bool {
	return len(p.Edges) == 0
}

// Nodes lists the visited node names, start first
func (p Path) Nodes() []string {
	if p.Empty() {
		return nil
	}
	names := make([]string, 0, len(p.Edges)+1)
	names = append(names, p.Edges[0].Src)
	for _, e := range p.Edges {
		names = append(names, e.Dst)
	}
	return names
}

// Tracer runs critical-path queries with a fixed depth bound
type Tracer struct {
	finder   PathFinder
	maxDepth int
	opts     options
}

// NewTracer creates a tracer. maxDepth <= 0 leaves the store's default.
func NewTracer(finder PathFinder, maxDepth int, opts ...Option) *Tracer {
	return &Tracer{finder: finder, maxDepth: maxDepth, opts: buildOptions(opts)}
}

// MaxDepth returns the configured depth bound
func (t *Tracer) MaxDepth() int {
	return t.maxDepth
}

// Trace finds the highest-delay path from start, ending at end when end is
// not empty. No path is an empty Path and a nil error.
func (t *Tracer) Trace(ctx context.Context, start, end string) (Path, error) {
	return t.TraceDepth(ctx, start, end, t.maxDepth)
}

// TraceDepth is Trace with a per-call depth bound
func (t *Tracer) TraceDepth(ctx context.Context, start, end string, maxDepth int) (Path, error) {
	began := time.Now()
	edges, err := t.finder.FindMaxDelayPath(ctx, start, end, maxDepth)
	if err != nil {
		t.opts.logger.Error("trace failed", logging.Pin(start), logging.Error(err))
		return Path{}, err
	}

	if edges == nil {
		edges = []model.Edge{}
	}
	path := Path{Edges: edges, Total: model.TotalDelay(edges)}
	t.opts.logger.Debug("trace finished",
		logging.Pin(start),
		logging.String("end", end),
		logging.Int("hops", len(edges)),
		logging.Float64("total", path.Total),
		logging.Latency(time.Since(began)))
	return path, nil
}
