package output

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// ProgressBar draws a single-line progress bar for a counted run.
type ProgressBar struct {
	w       io.Writer
	title   string
	total   int64
	current int64
	width   int
	step    int64
	mu      sync.Mutex
}

// NewProgressBar creates a progress bar for total units of work.
func NewProgressBar(w io.Writer, title string, total int64) *ProgressBar {
	step := total / 100
	if step < 1 {
		step = 1
	}
	return &ProgressBar{
		w:     w,
		title: title,
		total: total,
		width: 40,
		step:  step,
	}
}

// Increment adds n units and redraws on each whole percent.
func (p *ProgressBar) Increment(n int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	before := p.current / p.step
	p.current += n
	if p.current/p.step != before || p.current >= p.total {
		p.render()
	}
}

// Finish draws the final state and ends the line.
func (p *ProgressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = p.total
	p.render()
	fmt.Fprintln(p.w)
}

func (p *ProgressBar) render() {
	if p.total <= 0 {
		fmt.Fprintf(p.w, "\r%s %d", p.title, p.current)
		return
	}

	ratio := float64(p.current) / float64(p.total)
	if ratio > 1 {
		ratio = 1
	}
	filled := int(float64(p.width) * ratio)

	fmt.Fprintf(p.w, "\r%s [%s%s] %3.0f%% (%d/%d)",
		p.title,
		strings.Repeat("#", filled),
		strings.Repeat(".", p.width-filled),
		ratio*100,
		p.current,
		p.total,
	)
}
