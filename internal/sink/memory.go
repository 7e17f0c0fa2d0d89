package sink

import (
	"context"
	"sync"

	"github.com/epmon/endpoint-monitor/internal/domain"
)

// Memory records every delivered result. It backs the one-shot command and
// stands in for the real sinks in tests.
type Memory struct {
	mu      sync.Mutex
	results []domain.CheckResult
}

func (m *Memory) Deliver(ctx context.Context, r domain.CheckResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, r)
	return nil
}

func (m *Memory) Results() []domain.CheckResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.CheckResult, len(m.results))
	copy(out, m.results)
	return out
}
