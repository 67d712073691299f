package models

import (
	"time"
)

// Status values are ordinal labels only; no transition ordering is enforced.
type Status int

const (
	StatusPending Status = iota + 1
	StatusInProgress
	StatusCompleted
)

func (s Status) Valid() bool {
	return s >= StatusPending && s <= StatusCompleted
}

type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityHigh
)

func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

type Task struct {
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"not null;index"`
	User        User `gorm:"foreignKey:UserID"`
	Title       string `gorm:"not null"`
	Description *string
	DueDate     DateOnly `gorm:"type:date;not null"`
	Priority    Priority `gorm:"not null;default:1"`
	Status      Status   `gorm:"not null;default:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Task) TableName() string {
	return "tasks"
}
