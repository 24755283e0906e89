package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/dd0wney/glsgraph/pkg/logging"
	"github.com/dd0wney/glsgraph/pkg/metrics"
	"github.com/dd0wney/glsgraph/pkg/progress"
)

// NetlistImporter loads a gate-level netlist into the store
type NetlistImporter struct {
	store  GraphWriter
	parser NetlistParser
	opts   options
}

// NewNetlistImporter creates a netlist importer
func NewNetlistImporter(store GraphWriter, parser NetlistParser, opts ...Option) *NetlistImporter {
	return &NetlistImporter{store: store, parser: parser, opts: buildOptions(opts)}
}

// Import reads path twice: all nodes first, then all structural edges.
// Both passes share one bulk session.
func (imp *NetlistImporter) Import(ctx context.Context, path string, obs progress.Observer) (Summary, error) {
	summary := newSummary(path)
	logger := imp.opts.logger.With(logging.RunID(summary.RunID), logging.File(path))
	counter := newCountingObserver(obs)
	started := time.Now()

	logger.Info("netlist import started")
	err := imp.store.WithBulkSession(ctx, func(ctx context.Context) error {
		counter.SetDescription(PhaseNodes)
		timer := logging.StartTimer(logger, "phase complete", logging.Phase(PhaseNodes))
		err := drain(ctx, imp.parser.Nodes(path, counter), imp.store.SaveNodes, func(n int, d time.Duration) {
			summary.Nodes += n
			summary.Batches++
			imp.opts.recordBatch(metrics.KindNode, n, d)
			logger.Debug("node batch written", logging.Batch(summary.Batches), logging.Rows(n))
		})
		if err != nil {
			return fmt.Errorf("import nodes: %w", err)
		}
		timer.End(logging.Rows(summary.Nodes))

		counter.SetDescription(PhaseEdges)
		timer = logging.StartTimer(logger, "phase complete", logging.Phase(PhaseEdges))
		err = drain(ctx, imp.parser.Edges(path, counter), imp.store.SaveEdges, func(n int, d time.Duration) {
			summary.Edges += n
			summary.Batches++
			imp.opts.recordBatch(metrics.KindEdge, n, d)
			logger.Debug("edge batch written", logging.Batch(summary.Batches), logging.Rows(n))
		})
		if err != nil {
			return fmt.Errorf("import edges: %w", err)
		}
		timer.End(logging.Rows(summary.Edges))
		return nil
	})

	summary.Bytes = counter.bytes.Load()
	summary.Duration = time.Since(started)
	imp.opts.recordRun(RunNetlist, summary.Bytes, err)

	if err != nil {
		logger.Error("netlist import failed", logging.Error(err),
			logging.Int("nodes", summary.Nodes), logging.Int("edges", summary.Edges))
		return summary, err
	}
	logger.Info("netlist import finished",
		logging.Int("nodes", summary.Nodes),
		logging.Int("edges", summary.Edges),
		logging.Int("batches", summary.Batches),
		logging.Duration("duration", summary.Duration))
	return summary, nil
}
