package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kazu/todo-tracker/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", uuid.New().String()[:8]),
		password: "testpassword123",
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     b.username,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

// BuildAndLogin registers and logs the user in via the API. The returned
// client carries the session cookie for subsequent requests.
func (b *UserBuilder) BuildAndLogin(t *testing.T, ts *TestServer) (*domain.User, *http.Client) {
	t.Helper()

	client := ts.NewClient(t)
	creds := map[string]string{
		"username": b.username,
		"password": b.password,
	}

	resp := PostJSON(t, client, ts.APIURL("/auth/register"), creds)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("failed to register user: status %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode register response: %v", err)
	}

	loginResp := PostJSON(t, client, ts.APIURL("/auth/login"), creds)
	defer loginResp.Body.Close()
	if loginResp.StatusCode != http.StatusOK {
		t.Fatalf("failed to log in: status %d", loginResp.StatusCode)
	}

	userID, _ := uuid.Parse(authResp.ID)
	return &domain.User{ID: userID, Username: authResp.Username}, client
}

// TaskBuilder creates test tasks with a builder pattern
type TaskBuilder struct {
	owner       *domain.User
	title       string
	isCompleted bool
	createdAt   time.Time
	updatedAt   time.Time
}

// NewTaskBuilder creates a new TaskBuilder with default values
func NewTaskBuilder() *TaskBuilder {
	now := time.Now()
	return &TaskBuilder{
		title:     fmt.Sprintf("Test task %s", uuid.New().String()[:8]),
		createdAt: now,
		updatedAt: now,
	}
}

// WithOwner sets the owning user
func (b *TaskBuilder) WithOwner(user *domain.User) *TaskBuilder {
	b.owner = user
	return b
}

// WithTitle sets the task title
func (b *TaskBuilder) WithTitle(title string) *TaskBuilder {
	b.title = title
	return b
}

// Completed marks the task as completed
func (b *TaskBuilder) Completed() *TaskBuilder {
	b.isCompleted = true
	return b
}

// WithTimestamps overrides created_at and updated_at, useful for sort tests
func (b *TaskBuilder) WithTimestamps(createdAt, updatedAt time.Time) *TaskBuilder {
	b.createdAt = createdAt
	b.updatedAt = updatedAt
	return b
}

// Build creates the task in the database
func (b *TaskBuilder) Build(t *testing.T, db *gorm.DB) *domain.Task {
	t.Helper()

	if b.owner == nil {
		user, _ := NewUserBuilder().Build(t, db)
		b.owner = user
	}

	task := &domain.Task{
		ID:          uuid.New(),
		UserID:      b.owner.ID,
		Title:       b.title,
		IsCompleted: b.isCompleted,
		CreatedAt:   b.createdAt,
		UpdatedAt:   b.updatedAt,
	}

	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	return task
}

// PostJSON sends a JSON POST with the given client
func PostJSON(t *testing.T, client *http.Client, url string, body interface{}) *http.Response {
	t.Helper()

	jsonBody, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}

	resp, err := client.Post(url, "application/json", bytes.NewBuffer(jsonBody))
	if err != nil {
		t.Fatalf("failed to send request: %v", err)
	}
	return resp
}

// DoJSON sends a request with an arbitrary method and optional JSON body
func DoJSON(t *testing.T, client *http.Client, method, url string, body interface{}) *http.Response {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("failed to send request: %v", err)
	}
	return resp
}
