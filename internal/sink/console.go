package sink

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/epmon/endpoint-monitor/internal/domain"
)

// Console emits the human-readable line for each result,
// "Endpoint {id}: {status}", at Info when the endpoint is OK and Error when
// it is unavailable, with the structured record attached as fields.
type Console struct {
	Logger *zap.Logger
}

func NewConsole(logger *zap.Logger) *Console {
	return &Console{Logger: logger}
}

func (c *Console) Deliver(ctx context.Context, r domain.CheckResult) error {
	fields := []zap.Field{
		zap.String("url", r.URL),
		zap.Int64("response_time_ms", r.ResponseTimeMS),
		zap.Time("timestamp", r.Timestamp),
	}
	if r.ResponseCode != nil {
		fields = append(fields, zap.Int("response_code", *r.ResponseCode))
	}
	if r.Error != "" {
		fields = append(fields, zap.String("error", r.Error))
	}

	msg := fmt.Sprintf("Endpoint %s: %s", r.ID, r.Status)
	if r.OK() {
		c.Logger.Info(msg, fields...)
	} else {
		c.Logger.Error(msg, fields...)
	}
	return nil
}
