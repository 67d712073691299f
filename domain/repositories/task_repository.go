package repositories

import (
	"context"

	"taskforge/domain/models"
)

// TaskFilter narrows and orders one user's task listing. A nil Status means
// no status predicate. SortBy keys outside the known set fall back to id
// ascending so the order is always deterministic.
type TaskFilter struct {
	Status *models.Status
	SortBy string
	Offset int
	Limit  int
}

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	// GetByIDAndUser resolves a task only when it is owned by userID; the
	// ownership predicate lives in the query, not in a post-check.
	GetByIDAndUser(ctx context.Context, id, userID uint) (*models.Task, error)
	ListByUser(ctx context.Context, userID uint, filter TaskFilter) ([]*models.Task, int64, error)
	Update(ctx context.Context, task *models.Task) error
	// DeleteByIDAndUser reports the number of rows removed; zero means the
	// task was absent or owned by someone else.
	DeleteByIDAndUser(ctx context.Context, id, userID uint) (int64, error)
	CountOverdueByStatus(ctx context.Context, before models.DateOnly) (map[models.Status]int64, error)
}
