package sink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	cwltypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"

	"github.com/epmon/endpoint-monitor/internal/domain"
)

// logsAPI is the slice of the CloudWatch Logs client the sink needs.
type logsAPI interface {
	CreateLogStream(ctx context.Context, in *cloudwatchlogs.CreateLogStreamInput, opts ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.CreateLogStreamOutput, error)
	PutLogEvents(ctx context.Context, in *cloudwatchlogs.PutLogEventsInput, opts ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutLogEventsOutput, error)
}

// CloudWatch ships each result as one structured JSON event to a CloudWatch
// Logs stream. The stream is created lazily on first delivery so a broken
// remote degrades to per-delivery errors the orchestrator can log past.
type CloudWatch struct {
	client  logsAPI
	group   string
	stream  string
	created bool
}

// NewCloudWatch resolves AWS credentials from the environment and builds the
// sink. An error here means the remote sink stays unavailable; callers are
// expected to keep running with local output only.
func NewCloudWatch(ctx context.Context, group, stream string) (*CloudWatch, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return newCloudWatch(cloudwatchlogs.NewFromConfig(awsCfg), group, stream), nil
}

func newCloudWatch(client logsAPI, group, stream string) *CloudWatch {
	if stream == "" {
		stream = time.Now().UTC().Format("20060102T150405Z")
	}
	return &CloudWatch{client: client, group: group, stream: stream}
}

func (s *CloudWatch) Deliver(ctx context.Context, r domain.CheckResult) error {
	if err := s.ensureStream(ctx); err != nil {
		return err
	}
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = s.client.PutLogEvents(ctx, &cloudwatchlogs.PutLogEventsInput{
		LogGroupName:  aws.String(s.group),
		LogStreamName: aws.String(s.stream),
		LogEvents: []cwltypes.InputLogEvent{{
			Message:   aws.String(string(payload)),
			Timestamp: aws.Int64(r.Timestamp.UnixMilli()),
		}},
	})
	if err != nil {
		return fmt.Errorf("put log events: %w", err)
	}
	return nil
}

func (s *CloudWatch) ensureStream(ctx context.Context) error {
	if s.created {
		return nil
	}
	_, err := s.client.CreateLogStream(ctx, &cloudwatchlogs.CreateLogStreamInput{
		LogGroupName:  aws.String(s.group),
		LogStreamName: aws.String(s.stream),
	})
	if err != nil {
		var exists *cwltypes.ResourceAlreadyExistsException
		if !errors.As(err, &exists) {
			return fmt.Errorf("create log stream %s/%s: %w", s.group, s.stream, err)
		}
	}
	s.created = true
	return nil
}
