package domain

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID      uuid.UUID `json:"-" gorm:"type:uuid;not null;index"`
	User        User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	IsCompleted bool      `json:"is_completed" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Task list filter values. Unknown values fall back to the defaults
// (status "all", sort by creation time).
const (
	TaskStatusAll       = "all"
	TaskStatusCompleted = "completed"
	TaskStatusPending   = "pending"

	TaskSortCreated = "created"
	TaskSortUpdated = "updated"
)

type TaskFilter struct {
	Status string
	Search string
	Sort   string
}

type TaskUpdate struct {
	Title       *string
	IsCompleted *bool
}

// IsEmpty reports whether the update carries no fields at all.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.IsCompleted == nil
}

type TaskStats struct {
	Total          int64 `json:"total"`
	CompletedCount int64 `json:"completed_count"`
}
