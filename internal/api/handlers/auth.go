package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/kazu/todo-tracker/internal/api/middleware"
	"github.com/kazu/todo-tracker/internal/config"
	"github.com/kazu/todo-tracker/internal/domain"
	"github.com/kazu/todo-tracker/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		var validationErr *domain.ValidationError
		switch {
		case errors.As(err, &validationErr):
			respondValidationError(w, validationErr.Details)
		case errors.Is(err, domain.ErrUsernameTaken):
			respondError(w, http.StatusConflict, "username is already taken")
		default:
			log.Printf("ERROR [AuthHandler.Register] %v", err)
			respondError(w, http.StatusInternalServerError, h.serverErrorMessage(err))
		}
		return
	}

	respondJSON(w, http.StatusCreated, AuthResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Message:  "registration completed",
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		var validationErr *domain.ValidationError
		switch {
		case errors.As(err, &validationErr):
			respondValidationError(w, validationErr.Details)
		case errors.Is(err, domain.ErrInvalidCredentials):
			respondError(w, http.StatusUnauthorized, "invalid username or password")
		default:
			log.Printf("ERROR [AuthHandler.Login] %v", err)
			respondError(w, http.StatusInternalServerError, h.serverErrorMessage(err))
		}
		return
	}

	http.SetCookie(w, h.sessionCookie(result.Token, int(h.authService.SessionTTL().Seconds())))

	respondJSON(w, http.StatusOK, AuthResponse{
		ID:       result.User.ID.String(),
		Username: result.User.Username,
		Message:  "logged in",
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err == nil {
		if err := h.authService.Logout(r.Context(), cookie.Value); err != nil {
			log.Printf("ERROR [AuthHandler.Logout] %v", err)
			respondError(w, http.StatusInternalServerError, h.serverErrorMessage(err))
			return
		}
	}

	// MaxAge < 0 clears the cookie.
	http.SetCookie(w, h.sessionCookie("", -1))

	respondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) sessionCookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   h.cfg.IsProduction(),
	}
}

// serverErrorMessage exposes the underlying detail only outside production.
func (h *AuthHandler) serverErrorMessage(err error) string {
	if h.cfg.IsDevelopment() {
		return err.Error()
	}
	return "internal server error"
}
