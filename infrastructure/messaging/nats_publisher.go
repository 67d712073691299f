package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"taskforge/domain/ports"
	"taskforge/pkg/logger"
)

// NATSPublisher emits task lifecycle events on "tasks.<type>" subjects so
// external consumers (notifiers, analytics) can follow changes without
// polling the API.
type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	logger.Info("NATS publisher initialized", "url", url)

	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) PublishTaskEvent(ctx context.Context, event *ports.TaskEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal task event: %w", err)
	}

	subject := "tasks." + event.Type
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}

	logger.DebugContext(ctx, "Task event published",
		"subject", subject,
		"task_id", event.TaskID,
		"user_id", event.UserID,
	)
	return nil
}

func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}

var _ ports.TaskEventPublisher = (*NATSPublisher)(nil)
