package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/dd0wney/glsgraph/pkg/algorithms"
	"github.com/dd0wney/glsgraph/pkg/metrics"
	"github.com/dd0wney/glsgraph/pkg/model"
)

var _ algorithms.EdgeSource = (*Store)(nil)

// Stats summarizes the stored graph
type Stats struct {
	Nodes          int64 `json:"nodes"`
	Edges          int64 `json:"edges"`
	AnnotatedEdges int64 `json:"annotated_edges"`
}

// OutgoingEdges returns the edges whose src is name, in insertion order
func (s *Store) OutgoingEdges(ctx context.Context, name string) ([]model.Edge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ClosedError(opOutgoing)
	}

	rows, err := s.reader().QueryContext(ctx, outgoingEdgesSQL, name)
	if err != nil {
		return nil, NewError(opOutgoing).Entity("edges").Context(name).Cause(err).Err()
	}
	edges, err := scanEdges(rows)
	if err != nil {
		return nil, NewError(opOutgoing).Entity("edges").Context(name).Cause(err).Err()
	}
	return edges, nil
}

// Edges returns every stored edge in insertion order. It loads the whole
// table and is meant for inspection and tests.
func (s *Store) Edges(ctx context.Context) ([]model.Edge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ClosedError(opEdges)
	}

	rows, err := s.reader().QueryContext(ctx, allEdgesSQL)
	if err != nil {
		return nil, NewError(opEdges).Entity("edges").Cause(err).Err()
	}
	edges, err := scanEdges(rows)
	if err != nil {
		return nil, NewError(opEdges).Entity("edges").Cause(err).Err()
	}
	return edges, nil
}

// Stats counts nodes, edges and delay-annotated edges
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Stats{}, ClosedError(opStats)
	}

	start := time.Now()
	var stats Stats
	q := s.reader()
	for _, c := range []struct {
		query string
		dst   *int64
	}{
		{countNodesSQL, &stats.Nodes},
		{countEdgesSQL, &stats.Edges},
		{countAnnotatedSQL, &stats.AnnotatedEdges},
	} {
		if err := q.QueryRowContext(ctx, c.query).Scan(c.dst); err != nil {
			s.record(opStats, err, start, 0)
			return Stats{}, NewError(opStats).Cause(err).Err()
		}
	}
	s.record(opStats, nil, start, 0)

	if s.metrics != nil {
		s.metrics.SetGraphSize(stats.Nodes, stats.Edges, stats.AnnotatedEdges)
	}
	return stats, nil
}

// FindMaxDelayPath returns the highest-delay simple path from start within
// maxDepth hops, ending at end when end is not empty. maxDepth <= 0 selects
// algorithms.DefaultMaxDepth. No path is an empty result, not an error.
func (s *Store) FindMaxDelayPath(ctx context.Context, start, end string, maxDepth int) ([]model.Edge, error) {
	began := time.Now()
	path, err := algorithms.MaxDelayPath(ctx, s, start, end, maxDepth)
	if s.metrics != nil {
		s.metrics.RecordPathQuery(metrics.Status(err), time.Since(began), len(path))
	}
	if err != nil {
		return nil, NewError(opPath).Context(start).Cause(err).Err()
	}
	return path, nil
}

func scanEdges(rows *sql.Rows) ([]model.Edge, error) {
	defer rows.Close()

	var edges []model.Edge
	for rows.Next() {
		var e model.Edge
		if err := rows.Scan(&e.Src, &e.Dst, &e.DelayRise, &e.DelayFall); err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}
