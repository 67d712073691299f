package messaging

import (
	"context"

	"taskforge/domain/ports"
	"taskforge/pkg/logger"
)

// NoopPublisher swallows events. Used when NATS is not configured and in
// tests.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (p *NoopPublisher) PublishTaskEvent(ctx context.Context, event *ports.TaskEvent) error {
	logger.DebugContext(ctx, "Task event (noop)",
		"type", event.Type,
		"task_id", event.TaskID,
		"user_id", event.UserID,
	)
	return nil
}

func (p *NoopPublisher) Close() {}

var _ ports.TaskEventPublisher = (*NoopPublisher)(nil)
