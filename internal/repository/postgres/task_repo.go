package postgres

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/kazu/todo-tracker/internal/domain"
	"gorm.io/gorm"
)

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *taskRepository {
	return &taskRepository{db: db}
}

// ListByUser returns only rows owned by userID, newest first. Unknown
// status or sort values fall back to the defaults.
func (r *taskRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter domain.TaskFilter) ([]*domain.Task, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	switch filter.Status {
	case domain.TaskStatusCompleted:
		query = query.Where("is_completed = ?", true)
	case domain.TaskStatusPending:
		query = query.Where("is_completed = ?", false)
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("title ILIKE ?", "%"+search+"%")
	}

	if filter.Sort == domain.TaskSortUpdated {
		query = query.Order("updated_at DESC")
	} else {
		query = query.Order("created_at DESC")
	}

	var tasks []*domain.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetByID scopes the lookup by owner. A task owned by another user is
// indistinguishable from a missing one.
func (r *taskRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).First(&task, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) Create(ctx context.Context, userID uuid.UUID, title string) (*domain.Task, error) {
	task := &domain.Task{
		UserID: userID,
		Title:  strings.TrimSpace(title),
	}
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, err
	}
	// Re-read so DB-assigned defaults and timestamps are reflected.
	return r.GetByID(ctx, task.ID, userID)
}

// Update applies only the supplied fields, scoped by id and owner. An empty
// update returns the row unchanged. A mutation that affects zero rows is
// authoritative: the task is gone or not owned, regardless of any earlier
// read.
func (r *taskRepository) Update(ctx context.Context, id, userID uuid.UUID, update domain.TaskUpdate) (*domain.Task, error) {
	if update.IsEmpty() {
		return r.GetByID(ctx, id, userID)
	}

	fields := map[string]interface{}{}
	if update.Title != nil {
		fields["title"] = strings.TrimSpace(*update.Title)
	}
	if update.IsCompleted != nil {
		fields["is_completed"] = *update.IsCompleted
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id, userID)
}

// Delete reports true iff a row owned by userID was removed.
func (r *taskRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *taskRepository) GetStats(ctx context.Context, userID uuid.UUID) (*domain.TaskStats, error) {
	var stats domain.TaskStats
	err := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Select("COUNT(*) AS total, COALESCE(SUM(CASE WHEN is_completed THEN 1 ELSE 0 END), 0) AS completed_count").
		Where("user_id = ?", userID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
