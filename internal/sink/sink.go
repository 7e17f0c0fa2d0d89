// Package sink delivers check results to their destinations: the local
// console line, a CloudWatch Logs stream, or an in-memory recorder for tests.
package sink

import (
	"context"

	"go.uber.org/multierr"

	"github.com/epmon/endpoint-monitor/internal/domain"
)

// Sink consumes check results one at a time, synchronously, immediately
// after each probe.
type Sink interface {
	Deliver(ctx context.Context, r domain.CheckResult) error
}

// Multi fans a result out to several sinks. Every sink sees every result;
// delivery errors are collected rather than short-circuiting the rest.
type Multi []Sink

func (m Multi) Deliver(ctx context.Context, r domain.CheckResult) error {
	var errs error
	for _, s := range m {
		if s == nil {
			continue
		}
		errs = multierr.Append(errs, s.Deliver(ctx, r))
	}
	return errs
}
