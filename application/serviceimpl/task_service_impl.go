package serviceimpl

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"taskforge/domain/dto"
	"taskforge/domain/models"
	"taskforge/domain/ports"
	"taskforge/domain/repositories"
	"taskforge/domain/services"
	"taskforge/pkg/logger"
)

type TaskServiceImpl struct {
	taskRepo repositories.TaskRepository
	events   ports.TaskEventPublisher
}

func NewTaskService(taskRepo repositories.TaskRepository, events ports.TaskEventPublisher) services.TaskService {
	return &TaskServiceImpl{
		taskRepo: taskRepo,
		events:   events,
	}
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, userID uint, req *dto.CreateTaskRequest) (*models.Task, error) {
	task := &models.Task{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description.Value,
		DueDate:     *req.DueDate,
		Priority:    models.PriorityLow,
		Status:      models.StatusPending,
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.Status != nil {
		task.Status = *req.Status
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		logger.ErrorContext(ctx, "Failed to create task", "user_id", userID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "user_id", userID)
	s.publish(ctx, ports.EventTaskCreated, task)

	return task, nil
}

func (s *TaskServiceImpl) GetTask(ctx context.Context, userID, taskID uint) (*models.Task, error) {
	task, err := s.taskRepo.GetByIDAndUser(ctx, taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskServiceImpl) ListTasks(ctx context.Context, userID uint, q services.ListTasksQuery) ([]*models.Task, int64, error) {
	filter := repositories.TaskFilter{
		Status: q.Status,
		SortBy: q.SortBy,
		Offset: (q.Page - 1) * q.Limit,
		Limit:  q.Limit,
	}

	tasks, total, err := s.taskRepo.ListByUser(ctx, userID, filter)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list tasks", "user_id", userID, "error", err)
		return nil, 0, err
	}

	return tasks, total, nil
}

func (s *TaskServiceImpl) UpdateTask(ctx context.Context, userID, taskID uint, req *dto.UpdateTaskRequest) (*models.Task, error) {
	task, err := s.taskRepo.GetByIDAndUser(ctx, taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrTaskNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description.Set {
		task.Description = req.Description.Value
	}
	if req.DueDate != nil {
		task.DueDate = *req.DueDate
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	task.UpdatedAt = time.Now()

	// Last-write-wins: no version token is tracked, the final state is
	// whichever write commits last.
	if err := s.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrTaskNotFound
		}
		logger.ErrorContext(ctx, "Failed to update task", "task_id", taskID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Task updated", "task_id", taskID, "user_id", userID)
	s.publish(ctx, ports.EventTaskUpdated, task)

	return task, nil
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, userID, taskID uint) error {
	rows, err := s.taskRepo.DeleteByIDAndUser(ctx, taskID, userID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to delete task", "task_id", taskID, "error", err)
		return err
	}
	if rows == 0 {
		// Absent and already-deleted look the same on purpose.
		return services.ErrTaskNotFound
	}

	logger.InfoContext(ctx, "Task deleted", "task_id", taskID, "user_id", userID)
	s.publish(ctx, ports.EventTaskDeleted, &models.Task{ID: taskID, UserID: userID})

	return nil
}

// SetStatus accepts any of the three status values from any prior state;
// transitions are deliberately free-form.
func (s *TaskServiceImpl) SetStatus(ctx context.Context, userID, taskID uint, status models.Status) (*models.Task, error) {
	task, err := s.taskRepo.GetByIDAndUser(ctx, taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrTaskNotFound
		}
		return nil, err
	}

	task.Status = status
	task.UpdatedAt = time.Now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrTaskNotFound
		}
		logger.ErrorContext(ctx, "Failed to update task status", "task_id", taskID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Task status updated", "task_id", taskID, "status", status)
	s.publish(ctx, ports.EventTaskStatusChanged, task)

	return task, nil
}

func (s *TaskServiceImpl) MarkComplete(ctx context.Context, userID, taskID uint) (*models.Task, error) {
	return s.SetStatus(ctx, userID, taskID, models.StatusCompleted)
}

func (s *TaskServiceImpl) publish(ctx context.Context, eventType string, task *models.Task) {
	event := &ports.TaskEvent{
		Type:   eventType,
		TaskID: task.ID,
		UserID: task.UserID,
		Status: task.Status,
		At:     time.Now(),
	}
	if err := s.events.PublishTaskEvent(ctx, event); err != nil {
		logger.WarnContext(ctx, "Task event publish failed", "type", eventType, "task_id", task.ID, "error", err)
	}
}
