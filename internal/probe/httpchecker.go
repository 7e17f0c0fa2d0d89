package probe

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/epmon/endpoint-monitor/internal/config"
	"github.com/epmon/endpoint-monitor/internal/domain"
)

// Checker performs a single availability check of one endpoint.
type Checker interface {
	Check(ctx context.Context, ep config.Endpoint, def config.Defaults) domain.CheckResult
}

type HTTPChecker struct {
	Client *http.Client
}

// New returns a checker backed by a shared client. The client carries no
// timeout of its own; each check gets a deadline from the endpoint's
// effective timeout.
func New() *HTTPChecker {
	return &HTTPChecker{Client: &http.Client{}}
}

// Check probes ep exactly once and classifies the outcome. Endpoint fields
// override the global defaults and absent fields fall back per call, so two
// endpoints in the same cycle may resolve different timeouts and success
// sets. Transport failures of any kind become an UNAVAILABLE result instead
// of an error; nothing propagates past here.
func (c *HTTPChecker) Check(ctx context.Context, ep config.Endpoint, def config.Defaults) domain.CheckResult {
	id := ep.ID
	if id == "" {
		id = ep.URL
	}
	method := ep.Method
	if method == "" {
		method = http.MethodGet
	}
	timeout := def.Timeout
	if ep.TimeoutSeconds != nil {
		timeout = time.Duration(*ep.TimeoutSeconds) * time.Second
	}
	successCodes := def.SuccessCodes
	if len(ep.SuccessStatusCodes) > 0 {
		successCodes = config.CodeSet(ep.SuccessStatusCodes)
	}

	rctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	req, err := http.NewRequestWithContext(rctx, method, ep.URL, nil)
	if err != nil {
		return failure(id, ep.URL, start, err)
	}
	for k, v := range ep.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return failure(id, ep.URL, start, err)
	}
	// A body that cannot be read to the end (truncated, broken chunking) is
	// a malformed response, classified like any other transport failure.
	_, err = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if err != nil {
		return failure(id, ep.URL, start, err)
	}
	elapsed := time.Since(start).Milliseconds()

	code := resp.StatusCode
	status := domain.StatusUnavailable
	if successCodes.Contains(code) {
		status = domain.StatusOK
	}
	return domain.CheckResult{
		ID:             id,
		URL:            ep.URL,
		Status:         status,
		ResponseCode:   &code,
		ResponseTimeMS: elapsed,
		Timestamp:      time.Now().UTC(),
	}
}

func failure(id, url string, start time.Time, err error) domain.CheckResult {
	return domain.CheckResult{
		ID:             id,
		URL:            url,
		Status:         domain.StatusUnavailable,
		Error:          err.Error(),
		ResponseTimeMS: time.Since(start).Milliseconds(),
		Timestamp:      time.Now().UTC(),
	}
}
