package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kazu/todo-tracker/internal/domain"
	"github.com/kazu/todo-tracker/internal/repository"
	"gorm.io/gorm"
)

const sessionTokenBytes = 32

// SessionManager issues opaque tokens on login, resolves them on every
// protected request and destroys them on logout. Validity is an idle
// timeout: each successful resolve slides the expiry forward by the
// configured TTL.
type SessionManager struct {
	sessionRepo repository.SessionRepository
	ttl         time.Duration
}

func NewSessionManager(sessionRepo repository.SessionRepository, ttl time.Duration) *SessionManager {
	return &SessionManager{
		sessionRepo: sessionRepo,
		ttl:         ttl,
	}
}

func (m *SessionManager) Create(ctx context.Context, userID uuid.UUID, username string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	session := &domain.Session{
		ID:        uuid.New(),
		Token:     token,
		UserID:    userID,
		Username:  username,
		ExpiresAt: time.Now().Add(m.ttl),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := m.sessionRepo.Create(ctx, session); err != nil {
		return "", err
	}

	return token, nil
}

// Resolve maps a token to its identity. Absent and expired tokens both
// yield domain.ErrSessionNotFound; expired rows are removed on the way out.
func (m *SessionManager) Resolve(ctx context.Context, token string) (*domain.SessionIdentity, error) {
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}

	session, err := m.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	now := time.Now()
	if session.Expired(now) {
		_ = m.sessionRepo.DeleteByToken(ctx, token)
		return nil, domain.ErrSessionNotFound
	}

	// Sliding expiry; a failed touch only shortens the window.
	_ = m.sessionRepo.Touch(ctx, token, now.Add(m.ttl))

	return &domain.SessionIdentity{
		UserID:   session.UserID,
		Username: session.Username,
	}, nil
}

// Destroy is idempotent: a token that is already gone is not an error.
func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	return m.sessionRepo.DeleteByToken(ctx, token)
}

// PurgeExpired removes sessions whose idle window has lapsed.
func (m *SessionManager) PurgeExpired(ctx context.Context) error {
	return m.sessionRepo.DeleteExpired(ctx, time.Now())
}

// TTL returns the configured idle timeout, used to size the session cookie.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

func generateToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
