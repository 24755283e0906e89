package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 40

var labelStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("12")).
	Width(22)

// Terminal draws a single-line progress bar sized against a known input
// length. Each phase restarts the bar, since the netlist import reads its
// input once per phase.
type Terminal struct {
	mu          sync.Mutex
	w           io.Writer
	bar         progress.Model
	total       int64
	done        int64
	description string
	lastPercent int
	drawn       bool
}

// NewTerminal creates a renderer for an input of total bytes
func NewTerminal(w io.Writer, total int64) *Terminal {
	return &Terminal{
		w:           w,
		bar:         progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth)),
		total:       total,
		lastPercent: -1,
	}
}

// Update advances the bar, redrawing only when the whole percentage changes
func (t *Terminal) Update(increment int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.done += int64(increment)
	if pct := t.percent(); int(pct*100) != t.lastPercent {
		t.render(pct)
	}
}

// SetDescription closes the current bar and starts a new phase
func (t *Terminal) SetDescription(description string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.drawn {
		fmt.Fprintln(t.w)
	}
	t.description = description
	t.done = 0
	t.lastPercent = -1
	t.render(0)
}

// Finish draws the bar at 100% and ends the line
func (t *Terminal) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.render(1)
	fmt.Fprintln(t.w)
	t.drawn = false
}

func (t *Terminal) percent() float64 {
	if t.total <= 0 {
		return 0
	}
	return min(float64(t.done)/float64(t.total), 1)
}

func (t *Terminal) render(pct float64) {
	t.lastPercent = int(pct * 100)
	fmt.Fprintf(t.w, "\r%s %s", labelStyle.Render(t.description), t.bar.ViewAs(pct))
	t.drawn = true
}
