package output

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// ProgressBar displays completed operations against a known total.
type ProgressBar struct {
	w       io.Writer
	title   string
	total   uint64
	current uint64
	width   int
	mu      sync.Mutex
}

// NewProgressBar creates a progress bar counting up to total.
func NewProgressBar(w io.Writer, title string, total uint64) *ProgressBar {
	return &ProgressBar{
		w:     w,
		title: title,
		total: total,
		width: 40,
	}
}

// Set updates the number of completed operations and redraws.
func (p *ProgressBar) Set(current uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = current
	p.render()
}

// Finish redraws the final state and ends the line.
func (p *ProgressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.render()
	fmt.Fprintln(p.w)
}

func (p *ProgressBar) render() {
	if p.total == 0 {
		fmt.Fprintf(p.w, "\r%s %d ops", p.title, p.current)
		return
	}

	ratio := float64(p.current) / float64(p.total)
	if ratio > 1 {
		ratio = 1
	}
	filled := int(float64(p.width) * ratio)

	fmt.Fprintf(p.w, "\r%s [%s%s] %3.0f%% (%d/%d ops)",
		p.title,
		strings.Repeat("=", filled),
		strings.Repeat(" ", p.width-filled),
		ratio*100,
		p.current,
		p.total,
	)
}
