// Package progress reports import progress. It is advisory only: parsers
// call the observer as they consume input and nothing depends on what the
// observer does with it.
package progress

import (
	"sync"
	"sync/atomic"
)

// Observer receives byte increments and phase descriptions
type Observer interface {
	// Update reports that increment more bytes of input were consumed
	Update(increment int)
	// SetDescription names the current phase
	SetDescription(description string)
}

// Nop discards all progress
type Nop struct{}

func (Nop) Update(int)            {}
func (Nop) SetDescription(string) {}

// OrNop returns obs, or a Nop observer when obs is nil
func OrNop(obs Observer) Observer {
	if obs == nil {
		return Nop{}
	}
	return obs
}

// Counter accumulates progress in memory. Safe for concurrent use.
type Counter struct {
	bytes atomic.Int64

	mu     sync.Mutex
	phases []string
}

// Update adds increment to the byte count
func (c *Counter) Update(increment int) {
	c.bytes.Add(int64(increment))
}

// SetDescription records a phase
func (c *Counter) SetDescription(description string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phases = append(c.phases, description)
}

// Bytes returns the total bytes reported
func (c *Counter) Bytes() int64 {
	return c.bytes.Load()
}

// Phases returns the phase descriptions in the order they were set
func (c *Counter) Phases() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.phases...)
}
