// Package importer sequences parsers into the graph store.
//
// A netlist import writes every node batch, then every structural edge
// batch. A delay import pushes every delay batch into the store's update.
// Each import runs inside one bulk session, so a failure or cancellation
// keeps the batches written before it.
package importer

import (
	"context"
	"iter"
	"sync/atomic"
	"time"

	"github.com/dd0wney/glsgraph/pkg/logging"
	"github.com/dd0wney/glsgraph/pkg/metrics"
	"github.com/dd0wney/glsgraph/pkg/model"
	"github.com/dd0wney/glsgraph/pkg/progress"
	"github.com/google/uuid"
)

// Phase descriptions reported to progress observers
const (
	PhaseNodes  = "Importing Nodes..."
	PhaseEdges  = "Importing Edges..."
	PhaseDelays = "Importing Delays..."
)

// Run kinds used in logs and the import_runs metric
const (
	RunNetlist = "netlist"
	RunDelays  = "sdf"
)

// BulkSessioner scopes a group of writes to one store session
type BulkSessioner interface {
	WithBulkSession(ctx context.Context, fn func(ctx context.Context) error) error
}

// GraphWriter is what the netlist import writes through
type GraphWriter interface {
	BulkSessioner
	SaveNodes(ctx context.Context, nodes []model.Node) error
	SaveEdges(ctx context.Context, edges []model.Edge) error
}

// DelayWriter is what the delay import writes through
type DelayWriter interface {
	BulkSessioner
	UpdateEdgeDelays(ctx context.Context, delays []model.Edge) (int64, error)
}

// NetlistParser produces node and edge batches from a netlist file
type NetlistParser interface {
	Nodes(path string, obs progress.Observer) iter.Seq2[[]model.Node, error]
	Edges(path string, obs progress.Observer) iter.Seq2[[]model.Edge, error]
}

// DelayParser produces delay record batches from a delay file
type DelayParser interface {
	Delays(path string, obs progress.Observer) iter.Seq2[[]model.Edge, error]
}

// Summary describes one finished (or interrupted) import
type Summary struct {
	RunID    string        `json:"run_id"`
	File     string        `json:"file"`
	Nodes    int           `json:"nodes,omitempty"`
	Edges    int           `json:"edges,omitempty"`
	Delays   int           `json:"delays,omitempty"`
	Updated  int64         `json:"updated,omitempty"`
	Skipped  int           `json:"skipped,omitempty"`
	Batches  int           `json:"batches"`
	Bytes    int64         `json:"bytes"`
	Duration time.Duration `json:"duration"`
}

// Option configures an importer or tracer
type Option func(*options)

type options struct {
	logger  logging.Logger
	metrics *metrics.Registry
}

// WithLogger sets the logger
func WithLogger(logger logging.Logger) Option {
	return func(o *options) {
		o.logger = logging.OrNop(logger)
	}
}

// WithMetrics records import and query metrics into reg
func WithMetrics(reg *metrics.Registry) Option {
	return func(o *options) {
		o.metrics = reg
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: logging.NopLogger{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) recordBatch(kind string, n int, d time.Duration) {
	if o.metrics != nil {
		o.metrics.RecordImportBatch(kind, n, d)
	}
}

func (o options) recordRun(run string, bytes int64, err error) {
	if o.metrics == nil {
		return
	}
	o.metrics.RecordImportBytes(run, int(bytes))
	o.metrics.RecordImportRun(run, metrics.Status(err))
}

func newSummary(path string) Summary {
	return Summary{RunID: uuid.NewString(), File: path}
}

// countingObserver forwards to another observer while totalling bytes
type countingObserver struct {
	next  progress.Observer
	bytes atomic.Int64
}

func newCountingObserver(next progress.Observer) *countingObserver {
	return &countingObserver{next: progress.OrNop(next)}
}

func (c *countingObserver) Update(increment int) {
	c.bytes.Add(int64(increment))
	c.next.Update(increment)
}

func (c *countingObserver) SetDescription(description string) {
	c.next.SetDescription(description)
}

// drain writes every batch of a sequence, checking for cancellation before
// each write. It stops at the first parse or write error.
func drain[T any](ctx context.Context, batches iter.Seq2[[]T, error], write func(context.Context, []T) error, done func(n int, d time.Duration)) error {
	for batch, err := range batches {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		if err := write(ctx, batch); err != nil {
			return err
		}
		done(len(batch), time.Since(start))
	}
	return nil
}
