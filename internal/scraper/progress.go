package scraper

import (
	"fmt"
	"io"
	"sync"
)

// SearchProgress prints single-line progress feedback during a scrape.
// A nil *SearchProgress discards everything.
type SearchProgress struct {
	mu    sync.Mutex
	out   io.Writer
	stage string
}

func NewSearchProgress(out io.Writer) *SearchProgress {
	return &SearchProgress{out: out}
}

func (p *SearchProgress) SetStage(stage string) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stage = stage
	fmt.Fprintf(p.out, "\r\033[K⏳ %s...", stage)
}

func (p *SearchProgress) SetStatus(status string) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "\r\033[K⏳ %s: %s...", p.stage, status)
}

func (p *SearchProgress) Complete(summary string) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "\r\033[K✓ %s: %s\n", p.stage, summary)
}

func (p *SearchProgress) Error(err error) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "\r\033[K✗ %s: %v\n", p.stage, err)
}
