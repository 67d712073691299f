package postgres

import (
	"context"

	"gorm.io/gorm"

	"taskforge/domain/models"
	"taskforge/domain/repositories"
)

type TaskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepositoryImpl) GetByIDAndUser(ctx context.Context, id, userID uint) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) ListByUser(ctx context.Context, userID uint, filter repositories.TaskFilter) ([]*models.Task, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Task{}).Where("user_id = ?", userID)
	if filter.Status != nil {
		base = base.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base.Session(&gorm.Session{})
	switch filter.SortBy {
	case "due_date":
		query = query.Order("due_date ASC")
	case "priority":
		query = query.Order("priority DESC")
	case "title":
		query = query.Order("title ASC")
	default:
		// Unrecognized sort keys fall back to insertion order.
		query = query.Order("id ASC")
	}

	var tasks []*models.Task
	err := query.Offset(filter.Offset).Limit(filter.Limit).Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update writes the mutable columns unconditionally (last-write-wins),
// still scoped by owner so a foreign id can never be touched.
func (r *TaskRepositoryImpl) Update(ctx context.Context, task *models.Task) error {
	res := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ? AND user_id = ?", task.ID, task.UserID).
		Select("title", "description", "due_date", "priority", "status", "updated_at").
		Updates(task)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TaskRepositoryImpl) DeleteByIDAndUser(ctx context.Context, id, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Task{})
	return res.RowsAffected, res.Error
}

func (r *TaskRepositoryImpl) CountOverdueByStatus(ctx context.Context, before models.DateOnly) (map[models.Status]int64, error) {
	var rows []struct {
		Status models.Status
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Select("status, COUNT(*) AS count").
		Where("due_date < ? AND status <> ?", before, models.StatusCompleted).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
