package postgres

import (
	"context"
	"time"

	"github.com/kazu/todo-tracker/internal/domain"
	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var session domain.Session
	err := r.db.WithContext(ctx).First(&session, "token = ?", token).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Touch slides the idle-timeout window forward after a successful resolve.
func (r *sessionRepository) Touch(ctx context.Context, token string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("token = ?", token).
		Update("expires_at", expiresAt).Error
}

// DeleteByToken is idempotent: deleting an absent session is not an error.
func (r *sessionRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Delete(&domain.Session{}, "token = ?", token).Error
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	return r.db.WithContext(ctx).Delete(&domain.Session{}, "expires_at < ?", now).Error
}
