package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kazu/todo-tracker/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	IsUsernameTaken(ctx context.Context, username string) (bool, error)
}

type TaskRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID, filter domain.TaskFilter) ([]*domain.Task, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)
	Create(ctx context.Context, userID uuid.UUID, title string) (*domain.Task, error)
	Update(ctx context.Context, id, userID uuid.UUID, update domain.TaskUpdate) (*domain.Task, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
	GetStats(ctx context.Context, userID uuid.UUID) (*domain.TaskStats, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	Touch(ctx context.Context, token string, expiresAt time.Time) error
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) error
}

type Repositories struct {
	User    UserRepository
	Task    TaskRepository
	Session SessionRepository
}
