package ports

import (
	"context"
	"time"

	"taskforge/domain/models"
)

// Task lifecycle event types, published on subject "tasks.<type>".
const (
	EventTaskCreated       = "created"
	EventTaskUpdated       = "updated"
	EventTaskStatusChanged = "status_changed"
	EventTaskDeleted       = "deleted"
)

type TaskEvent struct {
	Type   string        `json:"type"`
	TaskID uint          `json:"task_id"`
	UserID uint          `json:"user_id"`
	Status models.Status `json:"status,omitempty"`
	At     time.Time     `json:"at"`
}

// TaskEventPublisher fans task lifecycle events out to interested
// consumers. Publishing is best-effort; command handling never fails
// because an event could not be delivered.
type TaskEventPublisher interface {
	PublishTaskEvent(ctx context.Context, event *TaskEvent) error
	Close()
}
