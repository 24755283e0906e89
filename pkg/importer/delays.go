package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/dd0wney/glsgraph/pkg/logging"
	"github.com/dd0wney/glsgraph/pkg/metrics"
	"github.com/dd0wney/glsgraph/pkg/model"
	"github.com/dd0wney/glsgraph/pkg/progress"
	"github.com/dd0wney/glsgraph/pkg/sdf"
)

// DelayImporter annotates stored edges with the delays of an SDF file
type DelayImporter struct {
	store  DelayWriter
	parser DelayParser
	opts   options
}

// NewDelayImporter creates a delay importer
func NewDelayImporter(store DelayWriter, parser DelayParser, opts ...Option) *DelayImporter {
	return &DelayImporter{store: store, parser: parser, opts: buildOptions(opts)}
}

// Import streams every delay batch into the store's delay update inside one
// bulk session. Records that match no edge are ignored by the store.
func (imp *DelayImporter) Import(ctx context.Context, path string, obs progress.Observer) (Summary, error) {
	summary := newSummary(path)
	logger := imp.opts.logger.With(logging.RunID(summary.RunID), logging.File(path))
	counter := newCountingObserver(obs)
	started := time.Now()

	parser := imp.withSkipHook(logger, &summary)

	logger.Info("delay import started")
	err := imp.store.WithBulkSession(ctx, func(ctx context.Context) error {
		counter.SetDescription(PhaseDelays)
		write := func(ctx context.Context, batch []model.Edge) error {
			updated, err := imp.store.UpdateEdgeDelays(ctx, batch)
			summary.Updated += updated
			return err
		}
		err := drain(ctx, parser.Delays(path, counter), write, func(n int, d time.Duration) {
			summary.Delays += n
			summary.Batches++
			imp.opts.recordBatch(metrics.KindDelay, n, d)
			logger.Debug("delay batch applied", logging.Batch(summary.Batches), logging.Rows(n))
		})
		if err != nil {
			return fmt.Errorf("import delays: %w", err)
		}
		return nil
	})

	summary.Bytes = counter.bytes.Load()
	summary.Duration = time.Since(started)
	imp.opts.recordRun(RunDelays, summary.Bytes, err)

	if summary.Skipped > 0 {
		logger.Warn("unrecognized INTERCONNECT records skipped", logging.Count(summary.Skipped))
	}
	if err != nil {
		logger.Error("delay import failed", logging.Error(err), logging.Int("delays", summary.Delays))
		return summary, err
	}
	logger.Info("delay import finished",
		logging.Int("delays", summary.Delays),
		logging.Int64("updated", summary.Updated),
		logging.Int("batches", summary.Batches),
		logging.Duration("duration", summary.Duration))
	return summary, nil
}

// withSkipHook returns the parser to use for one run. An *sdf.Parser is
// copied so the run can count its skipped records without touching the
// caller's hook.
func (imp *DelayImporter) withSkipHook(logger logging.Logger, summary *Summary) DelayParser {
	p, ok := imp.parser.(*sdf.Parser)
	if !ok {
		return imp.parser
	}

	run := *p
	previous := p.OnSkip
	run.OnSkip = func(record string) {
		summary.Skipped++
		if imp.opts.metrics != nil {
			imp.opts.metrics.RecordImportSkip(metrics.KindDelay)
		}
		logger.Debug("skipped record", logging.String("record", record))
		if previous != nil {
			previous(record)
		}
	}
	return &run
}
