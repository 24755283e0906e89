// Package verilog streams nodes and structural edges out of a flattened
// gate-level Verilog netlist.
//
// Only the statements the graph needs are recognised: wire/port
// declarations, cell instantiations and continuous assigns. Everything else
// is skipped.
package verilog

import (
	"iter"

	"github.com/dd0wney/glsgraph/pkg/model"
	"github.com/dd0wney/glsgraph/pkg/progress"
	"github.com/dd0wney/glsgraph/pkg/stream"
)

// Parser produces lazy batch sequences from a netlist file. Each call to
// Nodes or Edges re-reads the file from the start.
type Parser struct {
	// BatchSize bounds every yielded batch; stream.DefaultBatchSize if unset
	BatchSize int
}

// NewParser creates a parser with the given batch size
func NewParser(batchSize int) *Parser {
	return &Parser{BatchSize: batchSize}
}

// Nodes yields batches of declared signals
func (p *Parser) Nodes(path string, obs progress.Observer) iter.Seq2[[]model.Node, error] {
	return stream.Batches(p.nodes(path, obs), p.BatchSize)
}

// Edges yields batches of structural pin-to-net and assign edges
func (p *Parser) Edges(path string, obs progress.Observer) iter.Seq2[[]model.Edge, error] {
	return stream.Batches(p.edges(path, obs), p.BatchSize)
}

func (p *Parser) nodes(path string, obs progress.Observer) iter.Seq2[model.Node, error] {
	return func(yield func(model.Node, error) bool) {
		var names []string
		for line, err := range stream.ReadLines(path, obs) {
			if err != nil {
				yield(model.Node{}, err)
				return
			}
			names = ParseDeclaration(line, names[:0])
			for _, name := range names {
				if !yield(model.Node{Name: name}, nil) {
					return
				}
			}
		}
	}
}

func (p *Parser) edges(path string, obs progress.Observer) iter.Seq2[model.Edge, error] {
	return func(yield func(model.Edge, error) bool) {
		var scanner EdgeScanner
		var edges []model.Edge
		for line, err := range stream.ReadLines(path, obs) {
			if err != nil {
				yield(model.Edge{}, err)
				return
			}
			edges = scanner.Scan(line, edges[:0])
			for _, e := range edges {
				if !yield(e, nil) {
					return
				}
			}
		}
	}
}
