package scheduler

import (
	"context"
	"time"
)

// Clock abstracts time for the loop so tests can advance it deterministically
// instead of sleeping.
type Clock interface {
	Now() time.Time
	// Sleep waits for d or until ctx is cancelled, whichever comes first.
	Sleep(ctx context.Context, d time.Duration)
}

type realClock struct{}

// NewClock returns the wall clock.
func NewClock() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
