package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"taskforge/domain/models"
)

// NullableString distinguishes "field omitted" from "field explicitly null".
// A nil Value with Set true clears the stored description.
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, []byte("null")) {
		n.Value = nil
		return nil
	}
	return json.Unmarshal(data, &n.Value)
}

type CreateTaskRequest struct {
	Title       string           `json:"title" validate:"required,min=1,max=255"`
	Description NullableString   `json:"description" validate:"-"`
	DueDate     *models.DateOnly `json:"due_date" validate:"required"`
	Priority    *models.Priority `json:"priority" validate:"omitempty,min=1,max=3"`
	Status      *models.Status   `json:"status" validate:"omitempty,min=1,max=3"`
}

// UpdateTaskRequest is a patch: nil pointers (and an unset Description)
// leave the stored field unchanged.
type UpdateTaskRequest struct {
	Title       *string          `json:"title" validate:"omitempty,min=1,max=255"`
	Description NullableString   `json:"description" validate:"-"`
	DueDate     *models.DateOnly `json:"due_date"`
	Priority    *models.Priority `json:"priority" validate:"omitempty,min=1,max=3"`
	Status      *models.Status   `json:"status" validate:"omitempty,min=1,max=3"`
}

type UpdateStatusRequest struct {
	Status models.Status `json:"status" validate:"required,min=1,max=3"`
}

type TaskResponse struct {
	ID          uint            `json:"id"`
	UserID      uint            `json:"user_id"`
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	DueDate     models.DateOnly `json:"due_date"`
	Priority    models.Priority `json:"priority"`
	Status      models.Status   `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type TaskEnvelope struct {
	Task TaskResponse `json:"task"`
}

type TaskMessageResponse struct {
	Message string       `json:"message"`
	Task    TaskResponse `json:"task"`
}

// TaskListResponse is the paginated list contract shared with the frontend.
type TaskListResponse struct {
	Tasks      []TaskResponse `json:"tasks"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
}
