// Package sdf streams INTERCONNECT delay records out of a Standard Delay
// Format file.
//
// Records are parenthesis-delimited and may span many lines inside the
// CELL/DELAY/ABSOLUTE wrappers, which are ignored. Each record becomes a
// delay-bearing model.Edge whose pin names are already in netlist notation.
package sdf

import (
	"iter"
	"strings"

	"github.com/dd0wney/glsgraph/pkg/model"
	"github.com/dd0wney/glsgraph/pkg/progress"
	"github.com/dd0wney/glsgraph/pkg/stream"
)

// Parser produces lazy batches of delay records
type Parser struct {
	// BatchSize bounds every yielded batch; stream.DefaultBatchSize if unset
	BatchSize int

	// OnSkip, if set, receives every complete record that did not match the
	// INTERCONNECT shape
	OnSkip func(record string)
}

// NewParser creates a parser with the given batch size
func NewParser(batchSize int) *Parser {
	return &Parser{BatchSize: batchSize}
}

// Delays yields batches of delay records read from path
func (p *Parser) Delays(path string, obs progress.Observer) iter.Seq2[[]model.Edge, error] {
	return stream.Batches(p.delays(path, obs), p.BatchSize)
}

func (p *Parser) delays(path string, obs progress.Observer) iter.Seq2[model.Edge, error] {
	return func(yield func(model.Edge, error) bool) {
		var acc Accumulator
		var records []string
		for line, err := range stream.ReadLines(path, obs) {
			if err != nil {
				yield(model.Edge{}, err)
				return
			}
			if !acc.Active() && !strings.Contains(line, RecordStart) {
				continue
			}
			records = acc.Feed(line, records[:0])
			for _, record := range records {
				edge, ok := ParseInterconnect(record)
				if !ok {
					if p.OnSkip != nil {
						p.OnSkip(record)
					}
					continue
				}
				if !yield(edge, nil) {
					return
				}
			}
		}
	}
}
