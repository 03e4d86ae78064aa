package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/kazu/todo-tracker/internal/api/middleware"
	"github.com/kazu/todo-tracker/internal/config"
	"github.com/kazu/todo-tracker/internal/domain"
	"github.com/kazu/todo-tracker/internal/service"
)

type TaskHandler struct {
	taskService *service.TaskService
	cfg         *config.Config
}

func NewTaskHandler(taskService *service.TaskService, cfg *config.Config) *TaskHandler {
	return &TaskHandler{taskService: taskService, cfg: cfg}
}

type CreateTaskRequest struct {
	Title string `json:"title"`
}

// UpdateTaskRequest uses pointers to tell an absent field from a zero
// value; a non-boolean is_completed fails JSON decoding.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	IsCompleted *bool   `json:"is_completed"`
}

// TaskResponse is a task payload with a confirmation message attached.
type TaskResponse struct {
	domain.Task
	Message string `json:"message"`
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	query := r.URL.Query()
	list, err := h.taskService.List(r.Context(), userID, domain.TaskFilter{
		Status: query.Get("status"),
		Search: query.Get("search"),
		Sort:   query.Get("sort"),
	})
	if err != nil {
		log.Printf("ERROR [TaskHandler.List] %v", err)
		respondError(w, http.StatusInternalServerError, h.serverErrorMessage(err))
		return
	}

	respondJSON(w, http.StatusOK, list)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.taskService.Create(r.Context(), userID, req.Title)
	if err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			respondValidationError(w, validationErr.Details)
			return
		}
		log.Printf("ERROR [TaskHandler.Create] %v", err)
		respondError(w, http.StatusInternalServerError, h.serverErrorMessage(err))
		return
	}

	respondJSON(w, http.StatusCreated, TaskResponse{Task: *task, Message: "task created"})
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "task not found")
		return
	}

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "is_completed" {
			respondValidationError(w, []string{"is_completed must be true or false"})
			return
		}
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.taskService.Update(r.Context(), userID, taskID, domain.TaskUpdate{
		Title:       req.Title,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		var validationErr *domain.ValidationError
		switch {
		case errors.As(err, &validationErr):
			respondValidationError(w, validationErr.Details)
		case errors.Is(err, domain.ErrTaskNotFound):
			respondError(w, http.StatusNotFound, "task not found")
		default:
			log.Printf("ERROR [TaskHandler.Update] %v", err)
			respondError(w, http.StatusInternalServerError, h.serverErrorMessage(err))
		}
		return
	}

	respondJSON(w, http.StatusOK, TaskResponse{Task: *task, Message: "task updated"})
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "task not found")
		return
	}

	if err := h.taskService.Delete(r.Context(), userID, taskID); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			respondError(w, http.StatusNotFound, "task not found")
			return
		}
		log.Printf("ERROR [TaskHandler.Delete] %v", err)
		respondError(w, http.StatusInternalServerError, h.serverErrorMessage(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) serverErrorMessage(err error) string {
	if h.cfg.IsDevelopment() {
		return err.Error()
	}
	return "internal server error"
}
