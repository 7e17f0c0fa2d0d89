package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestCheckResult_ResponseCodeOmittedOnTransportFailure(t *testing.T) {
	r := CheckResult{
		ID:             "svc",
		URL:            "https://svc.test",
		Status:         StatusUnavailable,
		Error:          "dial tcp: connection refused",
		ResponseTimeMS: 12,
		Timestamp:      time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC),
	}
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), "response_code") {
		t.Fatalf("response_code should be absent on transport failure: %s", b)
	}
	if !strings.Contains(string(b), `"error":"dial tcp: connection refused"`) {
		t.Fatalf("error missing: %s", b)
	}
}

func TestCheckResult_ResponseCodePresentOnResponse(t *testing.T) {
	code := 503
	r := CheckResult{
		ID:           "svc",
		URL:          "https://svc.test",
		Status:       StatusUnavailable,
		ResponseCode: &code,
		Timestamp:    time.Now().UTC(),
	}
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"response_code":503`) {
		t.Fatalf("response_code missing: %s", b)
	}
	if strings.Contains(string(b), `"error"`) {
		t.Fatalf("error should be absent when a response was received: %s", b)
	}
}
