package sink

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/epmon/endpoint-monitor/internal/domain"
)

func okResult(id string) domain.CheckResult {
	code := 200
	return domain.CheckResult{
		ID:           id,
		URL:          "https://" + id + ".test",
		Status:       domain.StatusOK,
		ResponseCode: &code,
		Timestamp:    time.Now().UTC(),
	}
}

func downResult(id string) domain.CheckResult {
	return domain.CheckResult{
		ID:        id,
		URL:       "https://" + id + ".test",
		Status:    domain.StatusUnavailable,
		Error:     "connection refused",
		Timestamp: time.Now().UTC(),
	}
}

func TestConsole_InfoLineWhenOK(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	c := NewConsole(zap.New(core))

	require.NoError(t, c.Deliver(context.Background(), okResult("svc-a")))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Endpoint svc-a: OK", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, int64(200), entries[0].ContextMap()["response_code"])
}

func TestConsole_ErrorLineWhenUnavailable(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	c := NewConsole(zap.New(core))

	require.NoError(t, c.Deliver(context.Background(), downResult("svc-b")))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Endpoint svc-b: UNAVAILABLE", entries[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "connection refused", entries[0].ContextMap()["error"])
	assert.NotContains(t, entries[0].ContextMap(), "response_code")
}

type failingSink struct{ err error }

func (f *failingSink) Deliver(ctx context.Context, r domain.CheckResult) error { return f.err }

func TestMulti_DeliversToAllDespiteFailure(t *testing.T) {
	mem := &Memory{}
	boom := &failingSink{err: errors.New("remote down")}
	m := Multi{boom, mem}

	err := m.Deliver(context.Background(), okResult("svc-c"))

	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 1)
	require.Len(t, mem.Results(), 1, "later sinks must still receive the result")
	assert.Equal(t, "svc-c", mem.Results()[0].ID)
}

func TestMulti_NilSinksSkipped(t *testing.T) {
	mem := &Memory{}
	m := Multi{nil, mem}
	require.NoError(t, m.Deliver(context.Background(), okResult("svc-d")))
	assert.Len(t, mem.Results(), 1)
}
