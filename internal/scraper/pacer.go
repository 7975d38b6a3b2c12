package scraper

import (
	"context"
	"math/rand/v2"
	"time"
)

// Step names the point in the pipeline a pause happens at
type Step int

const (
	StepSearch Step = iota // before navigating to the next search URL
	StepPage               // after moving to the next results page
	StepDetail             // before navigating to the next detail page
)

func (s Step) String() string {
	switch s {
	case StepSearch:
		return "search"
	case StepPage:
		return "page"
	case StepDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// Range is an inclusive interval a pause duration is drawn from
type Range struct {
	Min time.Duration `mapstructure:"min" yaml:"min"`
	Max time.Duration `mapstructure:"max" yaml:"max"`
}

// PacingBounds holds one Range per Step
type PacingBounds struct {
	Search Range `mapstructure:"search" yaml:"search"`
	Page   Range `mapstructure:"page" yaml:"page"`
	Detail Range `mapstructure:"detail" yaml:"detail"`
}

func (b PacingBounds) For(step Step) Range {
	switch step {
	case StepSearch:
		return b.Search
	case StepPage:
		return b.Page
	default:
		return b.Detail
	}
}

// Pacer spaces out browser traffic. Wait returns early with the context's
// error when ctx is done.
type Pacer interface {
	Wait(ctx context.Context, step Step) error
}

// RandomPacer sleeps for a uniformly random duration within the step's bounds
type RandomPacer struct {
	bounds PacingBounds
	rnd    *rand.Rand
	sleep  func(context.Context, time.Duration) error
}

// NewRandomPacer builds a pacer. A nil rnd is seeded from the clock and a
// nil sleep waits on a timer.
func NewRandomPacer(bounds PacingBounds, rnd *rand.Rand, sleep func(context.Context, time.Duration) error) *RandomPacer {
	if rnd == nil {
		now := uint64(time.Now().UnixNano())
		rnd = rand.New(rand.NewPCG(now, now>>1))
	}
	if sleep == nil {
		sleep = sleepContext
	}
	return &RandomPacer{bounds: bounds, rnd: rnd, sleep: sleep}
}

func (p *RandomPacer) Wait(ctx context.Context, step Step) error {
	return p.sleep(ctx, p.draw(p.bounds.For(step)))
}

func (p *RandomPacer) draw(r Range) time.Duration {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + time.Duration(p.rnd.Int64N(int64(r.Max-r.Min)+1))
}

type noPacing struct{}

func (noPacing) Wait(ctx context.Context, _ Step) error { return ctx.Err() }

// NoPacing never sleeps
func NoPacing() Pacer { return noPacing{} }

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
