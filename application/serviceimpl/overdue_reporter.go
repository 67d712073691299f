package serviceimpl

import (
	"context"
	"time"

	"taskforge/domain/models"
	"taskforge/domain/repositories"
	"taskforge/pkg/logger"
)

// OverdueReporter logs how many open tasks are past their due date,
// broken down by status. Purely observational; it never mutates tasks.
type OverdueReporter struct {
	taskRepo repositories.TaskRepository
}

func NewOverdueReporter(taskRepo repositories.TaskRepository) *OverdueReporter {
	return &OverdueReporter{taskRepo: taskRepo}
}

func (r *OverdueReporter) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	counts, err := r.taskRepo.CountOverdueByStatus(ctx, models.Today())
	if err != nil {
		logger.Error("Overdue report failed", "error", err)
		return
	}

	logger.Info("Overdue task report",
		"pending", counts[models.StatusPending],
		"in_progress", counts[models.StatusInProgress],
	)
}
