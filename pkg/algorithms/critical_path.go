// Package algorithms holds graph searches that run over a pluggable edge
// source.
package algorithms

import (
	"context"
	"fmt"

	"github.com/dd0wney/glsgraph/pkg/model"
)

// DefaultMaxDepth bounds a path search when the caller passes no depth
const DefaultMaxDepth = 100

// EdgeSource supplies the outgoing edges of a node, in a stable order
type EdgeSource interface {
	OutgoingEdges(ctx context.Context, name string) ([]model.Edge, error)
}

// partialPath is one candidate being grown from the start node
type partialPath struct {
	edges []model.Edge
	total float64
}

// tail returns the node the path currently ends at
func (p partialPath) tail(start string) string {
	if len(p.edges) == 0 {
		return start
	}
	return p.edges[len(p.edges)-1].Dst
}

// visits reports whether name is already on the path. Names are compared
// whole, so "net1" is not mistaken for a prefix of "net10".
func (p partialPath) visits(start, name string) bool {
	if name == start {
		return true
	}
	for _, e := range p.edges {
		if e.Dst == name {
			return true
		}
	}
	return false
}

// extend returns a new path with e appended; p is left untouched
func (p partialPath) extend(e model.Edge) partialPath {
	edges := make([]model.Edge, len(p.edges), len(p.edges)+1)
	copy(edges, p.edges)
	return partialPath{
		edges: append(edges, e),
		total: p.total + e.Weight(),
	}
}

// MaxDelayPath searches for the simple path from start with the largest sum
// of edge weights, using at most maxDepth hops. When end is not empty the
// path must finish there. maxDepth <= 0 means DefaultMaxDepth.
//
// The search expands one hop per round. Each round keeps, per reached node,
// only the heaviest partial path (the first one found on ties), so a heavier
// path sharing an intermediate node with a lighter-but-earlier prefix can be
// pruned. The result is the heaviest candidate seen across all rounds; ties
// keep the earliest. An empty result means no path exists.
func MaxDelayPath(ctx context.Context, src EdgeSource, start, end string, maxDepth int) ([]model.Edge, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if start == "" || start == end {
		return nil, nil
	}

	var best partialPath
	found := false

	frontier := []partialPath{{}}
	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var next []partialPath
		index := make(map[string]int)

		for _, p := range frontier {
			tail := p.tail(start)
			out, err := src.OutgoingEdges(ctx, tail)
			if err != nil {
				return nil, fmt.Errorf("expand %s at depth %d: %w", tail, depth+1, err)
			}

			for _, e := range out {
				if p.visits(start, e.Dst) {
					continue
				}
				candidate := p.extend(e)

				if end == "" || e.Dst == end {
					if !found || candidate.total > best.total {
						best = candidate
						found = true
					}
				}
				if e.Dst == end {
					continue
				}

				if i, ok := index[e.Dst]; ok {
					if candidate.total > next[i].total {
						next[i] = candidate
					}
					continue
				}
				index[e.Dst] = len(next)
				next = append(next, candidate)
			}
		}

		frontier = next
	}

	return best.edges, nil
}
