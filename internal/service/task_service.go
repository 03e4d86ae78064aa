package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kazu/todo-tracker/internal/domain"
	"github.com/kazu/todo-tracker/internal/repository"
	"gorm.io/gorm"
)

// TaskService orchestrates task CRUD under the authenticated user's scope.
// Callers must pass a userID resolved from a valid session; rejecting
// unauthenticated requests is the request layer's job.
type TaskService struct {
	taskRepo repository.TaskRepository
}

func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

type TaskList struct {
	Data           []*domain.Task `json:"data"`
	Total          int64          `json:"total"`
	CompletedCount int64          `json:"completed_count"`
}

func (s *TaskService) List(ctx context.Context, userID uuid.UUID, filter domain.TaskFilter) (*TaskList, error) {
	tasks, err := s.taskRepo.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	stats, err := s.taskRepo.GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	if tasks == nil {
		tasks = []*domain.Task{}
	}

	return &TaskList{
		Data:           tasks,
		Total:          stats.Total,
		CompletedCount: stats.CompletedCount,
	}, nil
}

func (s *TaskService) Create(ctx context.Context, userID uuid.UUID, title string) (*domain.Task, error) {
	if err := domain.ValidateCreateTask(title); err != nil {
		return nil, err
	}
	return s.taskRepo.Create(ctx, userID, title)
}

// Update applies a partial update. A zero-rows result from the store is
// treated as not-found, even if the task existed moments earlier.
func (s *TaskService) Update(ctx context.Context, userID, id uuid.UUID, update domain.TaskUpdate) (*domain.Task, error) {
	if err := domain.ValidateUpdateTask(update); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.Update(ctx, id, userID, update)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	deleted, err := s.taskRepo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrTaskNotFound
	}
	return nil
}
