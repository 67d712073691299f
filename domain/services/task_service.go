package services

import (
	"context"

	"taskforge/domain/dto"
	"taskforge/domain/models"
)

// ListTasksQuery is the parsed query-string contract for task listing.
// Page is 1-indexed. Status is nil for "all".
type ListTasksQuery struct {
	Page   int
	Limit  int
	Status *models.Status
	SortBy string
}

type TaskService interface {
	CreateTask(ctx context.Context, userID uint, req *dto.CreateTaskRequest) (*models.Task, error)
	GetTask(ctx context.Context, userID, taskID uint) (*models.Task, error)
	ListTasks(ctx context.Context, userID uint, q ListTasksQuery) ([]*models.Task, int64, error)
	UpdateTask(ctx context.Context, userID, taskID uint, req *dto.UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, userID, taskID uint) error
	SetStatus(ctx context.Context, userID, taskID uint, status models.Status) (*models.Task, error)
	MarkComplete(ctx context.Context, userID, taskID uint) (*models.Task, error)
}
