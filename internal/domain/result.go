package domain

import "time"

// Status classifies the outcome of a single endpoint check.
type Status string

const (
	StatusOK          Status = "OK"
	StatusUnavailable Status = "UNAVAILABLE"
)

// CheckResult is the outcome of one probe of one endpoint. It is produced by
// the checker, handed to the sinks right away, and never mutated afterwards.
type CheckResult struct {
	ID             string    `json:"id"`
	URL            string    `json:"url"`
	Status         Status    `json:"status"`
	ResponseCode   *int      `json:"response_code,omitempty"` // nil on transport failure
	Error          string    `json:"error,omitempty"`         // set only on transport failure
	ResponseTimeMS int64     `json:"response_time_ms"`
	Timestamp      time.Time `json:"timestamp"`
}

func (r CheckResult) OK() bool { return r.Status == StatusOK }
