package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kazu/todo-tracker/internal/config"
	"github.com/kazu/todo-tracker/internal/domain"
	"github.com/kazu/todo-tracker/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	userRepo repository.UserRepository
	sessions *SessionManager
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, sessions *SessionManager, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		cfg:      cfg,
	}
}

type RegisterInput struct {
	Username string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

type LoginResult struct {
	User  *domain.User
	Token string
}

// Register validates the credentials, checks uniqueness and persists the
// new user. The pre-check gives a fast Conflict answer; the unique
// constraint in the store closes the remaining race.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := domain.ValidateRegister(input.Username, input.Password); err != nil {
		return nil, err
	}

	taken, err := s.userRepo.IsUsernameTaken(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(input.Username),
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the credentials and establishes a session. Unknown
// username and wrong password fail identically so that login does not
// reveal which usernames exist.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if err := domain.ValidateLogin(input.Username, input.Password); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user, Token: token}, nil
}

// Logout destroys the session. A session that is already gone is fine;
// only a store fault is an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}

// SessionTTL exposes the session idle timeout so the request layer can
// size the cookie to match.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessions.TTL()
}
