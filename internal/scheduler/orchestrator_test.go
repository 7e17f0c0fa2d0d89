package scheduler

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/epmon/endpoint-monitor/internal/config"
	"github.com/epmon/endpoint-monitor/internal/domain"
	"github.com/epmon/endpoint-monitor/internal/sink"
)

// --- fakes ---

type fakeChecker struct {
	checked []string          // urls in probe order
	down    map[string]string // url -> error text for transport failures
}

func (f *fakeChecker) Check(ctx context.Context, ep config.Endpoint, def config.Defaults) domain.CheckResult {
	f.checked = append(f.checked, ep.URL)
	id := ep.ID
	if id == "" {
		id = ep.URL
	}
	if reason, ok := f.down[ep.URL]; ok {
		return domain.CheckResult{ID: id, URL: ep.URL, Status: domain.StatusUnavailable, Error: reason}
	}
	code := 200
	return domain.CheckResult{ID: id, URL: ep.URL, Status: domain.StatusOK, ResponseCode: &code}
}

type erroringSink struct{ n int }

func (e *erroringSink) Deliver(ctx context.Context, r domain.CheckResult) error {
	e.n++
	return errors.New("sink unavailable")
}

func boolp(b bool) *bool { return &b }

// --- tests ---

func TestRunCycle_SkipsDisabledEndpoints(t *testing.T) {
	f := &config.File{Endpoints: []config.Endpoint{
		{URL: "https://a.test"},
		{URL: "https://b.test", Enabled: boolp(false)},
		{URL: "https://c.test"},
	}}
	chk := &fakeChecker{}
	mem := &sink.Memory{}
	o := NewOrchestrator(zap.NewNop(), chk, mem, f)

	results := o.RunCycle(context.Background())

	if len(results) != 2 {
		t.Fatalf("want 2 results, got %d", len(results))
	}
	if len(chk.checked) != 2 {
		t.Fatalf("disabled endpoint must not be probed, got %v", chk.checked)
	}
	if chk.checked[0] != "https://a.test" || chk.checked[1] != "https://c.test" {
		t.Fatalf("probes must follow configuration order, got %v", chk.checked)
	}
	for _, r := range results {
		if r.URL == "https://b.test" {
			t.Fatalf("disabled endpoint leaked into results: %+v", r)
		}
	}
}

func TestRunCycle_DispatchesEachResultToSink(t *testing.T) {
	f := &config.File{Endpoints: []config.Endpoint{
		{ID: "a", URL: "https://a.test"},
		{ID: "b", URL: "https://b.test"},
	}}
	chk := &fakeChecker{down: map[string]string{"https://b.test": "connection refused"}}
	mem := &sink.Memory{}
	o := NewOrchestrator(zap.NewNop(), chk, mem, f)

	o.RunCycle(context.Background())

	got := mem.Results()
	if len(got) != 2 {
		t.Fatalf("every result must reach the sink, got %d", len(got))
	}
	if got[0].ID != "a" || got[0].Status != domain.StatusOK {
		t.Fatalf("unexpected first result: %+v", got[0])
	}
	if got[1].ID != "b" || got[1].Status != domain.StatusUnavailable || got[1].Error == "" {
		t.Fatalf("unexpected second result: %+v", got[1])
	}
}

func TestRunCycle_FailingEndpointDoesNotAbortCycle(t *testing.T) {
	f := &config.File{Endpoints: []config.Endpoint{
		{URL: "https://down.test"},
		{URL: "https://up.test"},
	}}
	chk := &fakeChecker{down: map[string]string{"https://down.test": "timeout"}}
	o := NewOrchestrator(zap.NewNop(), chk, &sink.Memory{}, f)

	results := o.RunCycle(context.Background())

	if len(results) != 2 {
		t.Fatalf("failure of one endpoint must not stop the cycle, got %d results", len(results))
	}
	if results[1].Status != domain.StatusOK {
		t.Fatalf("sibling endpoint degraded by an unrelated failure: %+v", results[1])
	}
}

func TestRunCycle_SinkFailureDoesNotAbortCycle(t *testing.T) {
	f := &config.File{Endpoints: []config.Endpoint{
		{URL: "https://a.test"},
		{URL: "https://b.test"},
	}}
	es := &erroringSink{}
	o := NewOrchestrator(zap.NewNop(), &fakeChecker{}, es, f)

	results := o.RunCycle(context.Background())

	if len(results) != 2 {
		t.Fatalf("sink failure must not stop the cycle, got %d results", len(results))
	}
	if es.n != 2 {
		t.Fatalf("sink should still be offered every result, got %d deliveries", es.n)
	}
}
