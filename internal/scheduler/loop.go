package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/epmon/endpoint-monitor/internal/domain"
)

// pollSlice bounds how long the loop sleeps before re-checking for
// cancellation or a due cycle.
const pollSlice = time.Second

// Runner is one monitoring pass; implemented by Orchestrator.
type Runner interface {
	RunCycle(ctx context.Context) []domain.CheckResult
}

// Loop runs cycles at a fixed rate until the context is cancelled. The first
// cycle runs immediately on start. Later cycles are due every Interval from
// the previous due time; a due time missed because a cycle overran is caught
// up at the next poll, and cycles never overlap.
type Loop struct {
	logger   *zap.Logger
	runner   Runner
	clock    Clock
	interval time.Duration
}

func NewLoop(logger *zap.Logger, runner Runner, clock Clock, interval time.Duration) *Loop {
	if clock == nil {
		clock = NewClock()
	}
	return &Loop{logger: logger, runner: runner, clock: clock, interval: interval}
}

// Run blocks until ctx is cancelled, then returns nil. A non-positive
// interval is a configuration error and is rejected before the first cycle.
func (l *Loop) Run(ctx context.Context) error {
	if l.interval <= 0 {
		return fmt.Errorf("check interval must be positive, got %s", l.interval)
	}
	l.logger.Info("monitor_started", zap.Duration("interval", l.interval))

	l.runner.RunCycle(ctx)
	next := l.clock.Now().Add(l.interval)

	for {
		if ctx.Err() != nil {
			l.logger.Info("monitor_stopped")
			return nil
		}
		now := l.clock.Now()
		if now.Before(next) {
			wait := next.Sub(now)
			if wait > pollSlice {
				wait = pollSlice
			}
			l.clock.Sleep(ctx, wait)
			continue
		}

		l.runner.RunCycle(ctx)
		// Due times stay on the original grid; an overrun cycle is followed
		// by catch-up cycles until the grid passes the present.
		next = next.Add(l.interval)
	}
}
