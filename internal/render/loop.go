package render

import (
	"context"
	"time"
)

// DefaultFrameRate matches a typical display refresh.
const DefaultFrameRate = 60

// Loop calls Frame at a fixed rate until its context ends.
type Loop struct {
	Interval time.Duration
	Frame    func(time.Time)
}

// NewLoop creates a loop ticking rate times per second. Rates below one
// fall back to DefaultFrameRate.
func NewLoop(rate int, frame func(time.Time)) *Loop {
	if rate < 1 {
		rate = DefaultFrameRate
	}
	return &Loop{Interval: time.Second / time.Duration(rate), Frame: frame}
}

// Run blocks, ticking until ctx is done, and returns ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	t := time.NewTicker(l.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			l.Frame(now)
		}
	}
}
