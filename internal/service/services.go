package service

import (
	"github.com/kazu/todo-tracker/internal/config"
	"github.com/kazu/todo-tracker/internal/repository"
)

type Services struct {
	Auth     *AuthService
	Task     *TaskService
	Sessions *SessionManager
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	sessions := NewSessionManager(repos.Session, cfg.SessionTTL)
	return &Services{
		Auth:     NewAuthService(repos.User, sessions, cfg),
		Task:     NewTaskService(repos.Task),
		Sessions: sessions,
	}
}
