package pacing

import (
	"context"
	"testing"
	"time"
)

func TestFixedPacerZeroIntervalNeverBlocks(t *testing.T) {
	t.Parallel()

	p := NewFixed(0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 100; i++ {
		if err := p.Wait(ctx); err != nil {
			t.Fatalf("Wait returned error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Fatalf("zero-interval pacer blocked for %v", elapsed)
	}
}

func TestFixedPacerEnforcesInterval(t *testing.T) {
	t.Parallel()

	p := NewFixed(20 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := p.Wait(ctx); err != nil {
			t.Fatalf("Wait returned error: %v", err)
		}
	}

	// First call is immediate, the next two are paced.
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Fatalf("expected at least 40ms of pacing, got %v", elapsed)
	}
}

func TestFixedPacerHonorsContextCancellation(t *testing.T) {
	t.Parallel()

	p := NewFixed(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	if err := p.Wait(ctx); err != nil {
		t.Fatalf("first Wait should not block: %v", err)
	}

	cancel()
	if err := p.Wait(ctx); err == nil {
		t.Fatalf("expected error after cancellation")
	}
}
