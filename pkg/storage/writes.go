package storage

import (
	"context"
	"fmt"

	"github.com/dd0wney/glsgraph/pkg/logging"
	"github.com/dd0wney/glsgraph/pkg/model"
)

// SaveNodes inserts a batch of nodes. Names already present are ignored.
func (s *Store) SaveNodes(ctx context.Context, nodes []model.Node) error {
	if len(nodes) == 0 {
		return nil
	}
	for i, n := range nodes {
		if n.Name == "" {
			return NewError("save").Nodes(len(nodes)).
				Cause(fmt.Errorf("%w: node %d has an empty name", ErrInvalidBatch, i)).Err()
		}
	}

	inserted, err := s.write(ctx, opSaveNodes, func(ctx context.Context, q querier) (int64, error) {
		return execEach(ctx, q, insertNodeSQL, len(nodes), func(i int) []any {
			return []any{nodes[i].Name}
		})
	})
	if err != nil {
		return NewError("save").Nodes(len(nodes)).Cause(err).Err()
	}

	s.logger.Debug("nodes saved", logging.Rows(len(nodes)), logging.Int64("inserted", inserted))
	return nil
}

// SaveEdges appends a batch of edges. Edges are never deduplicated.
func (s *Store) SaveEdges(ctx context.Context, edges []model.Edge) error {
	if len(edges) == 0 {
		return nil
	}
	for i, e := range edges {
		if e.Src == "" || e.Dst == "" {
			return NewError("save").Edges(len(edges)).
				Cause(fmt.Errorf("%w: edge %d has an empty endpoint", ErrInvalidBatch, i)).Err()
		}
	}

	_, err := s.write(ctx, opSaveEdges, func(ctx context.Context, q querier) (int64, error) {
		return execEach(ctx, q, insertEdgeSQL, len(edges), func(i int) []any {
			e := edges[i]
			return []any{e.Src, e.Dst, e.DelayRise, e.DelayFall}
		})
	})
	if err != nil {
		return NewError("save").Edges(len(edges)).Cause(err).Err()
	}

	s.logger.Debug("edges saved", logging.Rows(len(edges)))
	return nil
}

// UpdateEdgeDelays annotates existing edges with the delays in a batch of
// delay records and returns the number of edge rows updated.
//
// A record's sink pin (Dst) is matched against the src column: structural
// edges keep the pin in src. Every edge leaving that pin receives the same
// rise/fall. Records matching no edge are ignored and no row is ever
// inserted. When one batch carries the same sink twice, the later record
// wins.
func (s *Store) UpdateEdgeDelays(ctx context.Context, delays []model.Edge) (int64, error) {
	if len(delays) == 0 {
		return 0, nil
	}
	for i, d := range delays {
		if d.Dst == "" {
			return 0, NewError("update").Delays(len(delays)).
				Cause(fmt.Errorf("%w: delay %d has an empty sink", ErrInvalidBatch, i)).Err()
		}
	}

	updated, err := s.write(ctx, opUpdateDelays, func(ctx context.Context, q querier) (int64, error) {
		if _, err := q.ExecContext(ctx, createDelayTableSQL); err != nil {
			return 0, fmt.Errorf("create staging table: %w", err)
		}
		if _, err := q.ExecContext(ctx, clearDelayTableSQL); err != nil {
			return 0, fmt.Errorf("clear staging table: %w", err)
		}

		if _, err := execEach(ctx, q, stageDelaySQL, len(delays), func(i int) []any {
			d := delays[i]
			return []any{d.Dst, d.DelayRise, d.DelayFall}
		}); err != nil {
			return 0, fmt.Errorf("stage delays: %w", err)
		}

		res, err := q.ExecContext(ctx, applyDelaysSQL)
		if err != nil {
			return 0, fmt.Errorf("apply delays: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}

		if _, err := q.ExecContext(ctx, clearDelayTableSQL); err != nil {
			return 0, fmt.Errorf("clear staging table: %w", err)
		}
		return n, nil
	})
	if err != nil {
		return 0, NewError("update").Delays(len(delays)).Cause(err).Err()
	}

	s.logger.Debug("delays applied", logging.Rows(len(delays)), logging.Int64("updated", updated))
	return updated, nil
}
