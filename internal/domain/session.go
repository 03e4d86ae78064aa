package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session maps an opaque token to an authenticated user. Rows are created on
// login, slid forward on every successful resolve and removed on logout or
// expiry. Concurrent logins by the same user produce independent sessions.
type Session struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Token     string    `json:"-" gorm:"uniqueIndex;not null"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	User      User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Username  string    `json:"username" gorm:"not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// SessionIdentity is what a resolved token yields: just enough to scope
// task operations to their owner.
type SessionIdentity struct {
	UserID   uuid.UUID
	Username string
}
