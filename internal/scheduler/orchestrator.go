package scheduler

import (
	"context"

	"go.uber.org/zap"

	"github.com/epmon/endpoint-monitor/internal/config"
	"github.com/epmon/endpoint-monitor/internal/domain"
	"github.com/epmon/endpoint-monitor/internal/probe"
	"github.com/epmon/endpoint-monitor/internal/sink"
)

// Orchestrator runs one pass over the configured endpoints. Checks are
// strictly sequential; a slow endpoint delays its siblings within the cycle
// but never fails them.
type Orchestrator struct {
	logger   *zap.Logger
	checker  probe.Checker
	sink     sink.Sink
	file     *config.File
	defaults config.Defaults
}

func NewOrchestrator(logger *zap.Logger, checker probe.Checker, s sink.Sink, f *config.File) *Orchestrator {
	return &Orchestrator{
		logger:   logger,
		checker:  checker,
		sink:     s,
		file:     f,
		defaults: f.Defaults(),
	}
}

// RunCycle checks every enabled endpoint in configuration order, one at a
// time, and hands each result to the sink as soon as it is produced. Sink
// failures are logged and the cycle keeps going.
func (o *Orchestrator) RunCycle(ctx context.Context) []domain.CheckResult {
	o.logger.Info("cycle_start")

	enabled := make([]config.Endpoint, 0, len(o.file.Endpoints))
	for _, ep := range o.file.Endpoints {
		if ep.IsEnabled() {
			enabled = append(enabled, ep)
		}
	}
	if skipped := len(o.file.Endpoints) - len(enabled); skipped > 0 {
		o.logger.Info("cycle_skipped_disabled", zap.Int("count", skipped))
	}

	results := make([]domain.CheckResult, 0, len(enabled))
	for _, ep := range enabled {
		r := o.checker.Check(ctx, ep, o.defaults)
		results = append(results, r)

		if err := o.sink.Deliver(ctx, r); err != nil {
			o.logger.Warn("sink_delivery_failed",
				zap.String("endpoint_id", r.ID),
				zap.Error(err),
			)
		}
	}

	o.logger.Info("cycle_complete", zap.Int("completed", len(results)))
	return results
}
