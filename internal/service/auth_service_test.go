package service_test

import (
	"context"
	"testing"

	"github.com/kazu/todo-tracker/internal/domain"
	"github.com/kazu/todo-tracker/internal/repository/postgres"
	"github.com/kazu/todo-tracker/internal/service"
	"github.com/kazu/todo-tracker/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	services := service.NewServices(repos, cfg)
	authService := services.Auth
	ctx := context.Background()

	tests := []struct {
		name        string
		input       service.RegisterInput
		setup       func()
		wantErr     error
		wantDetails []string
	}{
		{
			name: "successful registration",
			input: service.RegisterInput{
				Username: "newuser",
				Password: "password123",
			},
		},
		{
			name: "username is trimmed before persisting",
			input: service.RegisterInput{
				Username: "  spaced_user  ",
				Password: "password123",
			},
		},
		{
			name: "duplicate username",
			input: service.RegisterInput{
				Username: "existinguser",
				Password: "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithUsername("existinguser").
					Build(t, testDB.DB)
			},
			wantErr: domain.ErrUsernameTaken,
		},
		{
			name: "all violated rules are reported",
			input: service.RegisterInput{
				Username: "a!",
				Password: "short",
			},
			wantDetails: []string{
				"username must be between 3 and 50 characters",
				"username can only contain letters, numbers, and underscores",
				"password must be at least 8 characters",
			},
		},
		{
			name:  "empty credentials",
			input: service.RegisterInput{},
			wantDetails: []string{
				"username is required",
				"password is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clean up between tests
			testDB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			user, err := authService.Register(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			if tt.wantDetails != nil {
				var validationErr *domain.ValidationError
				require.ErrorAs(t, err, &validationErr)
				for _, detail := range tt.wantDetails {
					assert.Contains(t, validationErr.Details, detail)
				}
				return
			}

			require.NoError(t, err)
			assert.NotNil(t, user)
			assert.NotEmpty(t, user.PasswordHash)
			assert.NotEqual(t, tt.input.Password, user.PasswordHash)
		})
	}
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	services := service.NewServices(repos, cfg)
	ctx := context.Background()

	user, err := services.Auth.Register(ctx, service.RegisterInput{
		Username: "roundtrip",
		Password: "password123",
	})
	require.NoError(t, err)

	result, err := services.Auth.Login(ctx, service.LoginInput{
		Username: "roundtrip",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)
	assert.NotEmpty(t, result.Token)

	// The session resolves back to the same user.
	identity, err := services.Sessions.Resolve(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, "roundtrip", identity.Username)
}

func TestAuthService_Login(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	services := service.NewServices(repos, cfg)
	authService := services.Auth
	ctx := context.Background()

	user, rawPassword := testutil.NewUserBuilder().
		WithUsername("loginuser").
		WithPassword("correctpassword").
		Build(t, testDB.DB)

	tests := []struct {
		name    string
		input   service.LoginInput
		wantErr error
	}{
		{
			name: "successful login",
			input: service.LoginInput{
				Username: user.Username,
				Password: rawPassword,
			},
		},
		{
			name: "wrong password",
			input: service.LoginInput{
				Username: user.Username,
				Password: "wrongpassword",
			},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name: "non-existent user fails identically",
			input: service.LoginInput{
				Username: "nonexistent",
				Password: "anypassword",
			},
			wantErr: domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := authService.Login(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, user.ID, result.User.ID)
			assert.NotEmpty(t, result.Token)
		})
	}
}

func TestAuthService_LoginValidation(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	services := service.NewServices(repos, cfg)
	ctx := context.Background()

	_, err := services.Auth.Login(ctx, service.LoginInput{})

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Details, "username is required")
	assert.Contains(t, validationErr.Details, "password is required")
}

func TestAuthService_Logout(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	services := service.NewServices(repos, cfg)
	ctx := context.Background()

	_, err := services.Auth.Register(ctx, service.RegisterInput{
		Username: "logoutuser",
		Password: "password123",
	})
	require.NoError(t, err)

	result, err := services.Auth.Login(ctx, service.LoginInput{
		Username: "logoutuser",
		Password: "password123",
	})
	require.NoError(t, err)

	require.NoError(t, services.Auth.Logout(ctx, result.Token))

	_, err = services.Sessions.Resolve(ctx, result.Token)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// Logging out again should not error (session already gone).
	require.NoError(t, services.Auth.Logout(ctx, result.Token))
}
