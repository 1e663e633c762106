// Package pacing isolates the "wait before next item" policy behind a small
// abstraction so the fixed inter-article delay can later be swapped for an
// adaptive limiter without touching orchestration logic.
package pacing

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer blocks between pipeline iterations.
type Pacer interface {
	Wait(ctx context.Context) error
}

// FixedPacer enforces a fixed delay between successive Wait calls. The first
// call returns immediately; later calls block until the interval has passed.
type FixedPacer struct {
	limiter *rate.Limiter
}

var _ Pacer = (*FixedPacer)(nil)

// NewFixed builds a pacer for the given interval. Non-positive intervals
// yield a pacer that never blocks.
func NewFixed(interval time.Duration) *FixedPacer {
	if interval <= 0 {
		return &FixedPacer{}
	}
	return &FixedPacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next iteration may proceed or the context ends.
func (p *FixedPacer) Wait(ctx context.Context) error {
	if p.limiter == nil {
		return nil
	}
	return p.limiter.Wait(ctx)
}
