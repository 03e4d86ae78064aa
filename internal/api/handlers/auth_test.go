package handlers_test

import (
	"net/http"
	"testing"

	"github.com/kazu/todo-tracker/internal/api/middleware"
	"github.com/kazu/todo-tracker/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Register(t *testing.T) {
	ts := testutil.NewTestServer(t)
	client := ts.NewClient(t)

	tests := []struct {
		name           string
		request        map[string]string
		setup          func()
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "successful registration",
			request: map[string]string{
				"username": "newuser",
				"password": "password123",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result testutil.AuthResponse
				testutil.AssertJSONResponse(t, resp, &result)
				assert.Equal(t, "newuser", result.Username)
				assert.NotEmpty(t, result.ID)
				assert.NotEmpty(t, result.Message)
			},
		},
		{
			name: "missing password",
			request: map[string]string{
				"username": "testuser",
			},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp *http.Response) {
				testutil.AssertValidationDetails(t, resp, "password is required")
			},
		},
		{
			name: "short username and password report every rule",
			request: map[string]string{
				"username": "a!",
				"password": "short",
			},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp *http.Response) {
				testutil.AssertValidationDetails(t, resp,
					"username must be between 3 and 50 characters",
					"username can only contain letters, numbers, and underscores",
					"password must be at least 8 characters",
				)
			},
		},
		{
			name: "duplicate username",
			request: map[string]string{
				"username": "existinguser",
				"password": "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithUsername("existinguser").
					Build(t, ts.DB.DB)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "empty request body",
			request:        map[string]string{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.DB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			resp := testutil.PostJSON(t, client, ts.APIURL("/auth/register"), tt.request)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, rawPassword := testutil.NewUserBuilder().
		WithUsername("loginuser").
		WithPassword("correctpassword").
		Build(t, ts.DB.DB)

	tests := []struct {
		name           string
		request        map[string]string
		expectedStatus int
		wantCookie     bool
	}{
		{
			name: "successful login sets session cookie",
			request: map[string]string{
				"username": user.Username,
				"password": rawPassword,
			},
			expectedStatus: http.StatusOK,
			wantCookie:     true,
		},
		{
			name: "invalid password",
			request: map[string]string{
				"username": user.Username,
				"password": "wrongpassword",
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "non-existent user fails the same way",
			request: map[string]string{
				"username": "nonexistent",
				"password": "anypassword",
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing fields",
			request:        map[string]string{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := ts.NewClient(t)
			resp := testutil.PostJSON(t, client, ts.APIURL("/auth/login"), tt.request)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			var sessionCookie *http.Cookie
			for _, cookie := range resp.Cookies() {
				if cookie.Name == middleware.SessionCookieName {
					sessionCookie = cookie
				}
			}

			if tt.wantCookie {
				require.NotNil(t, sessionCookie, "login must set the session cookie")
				assert.NotEmpty(t, sessionCookie.Value)
				assert.True(t, sessionCookie.HttpOnly)
				assert.Equal(t, http.SameSiteStrictMode, sessionCookie.SameSite)
			} else {
				assert.Nil(t, sessionCookie)
			}
		})
	}
}

func TestAuthHandler_LoginErrorsDoNotRevealUsernames(t *testing.T) {
	ts := testutil.NewTestServer(t)
	client := ts.NewClient(t)

	testutil.NewUserBuilder().
		WithUsername("realuser").
		WithPassword("correctpassword").
		Build(t, ts.DB.DB)

	wrongPassword := testutil.PostJSON(t, client, ts.APIURL("/auth/login"), map[string]string{
		"username": "realuser",
		"password": "wrongpassword",
	})
	defer wrongPassword.Body.Close()

	unknownUser := testutil.PostJSON(t, client, ts.APIURL("/auth/login"), map[string]string{
		"username": "ghostuser",
		"password": "wrongpassword",
	})
	defer unknownUser.Body.Close()

	testutil.AssertErrorResponse(t, wrongPassword, http.StatusUnauthorized, "invalid username or password")
	testutil.AssertErrorResponse(t, unknownUser, http.StatusUnauthorized, "invalid username or password")
}

func TestAuthHandler_Logout(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, client := testutil.NewUserBuilder().BuildAndLogin(t, ts)

	// The session works before logout.
	tasksResp := testutil.DoJSON(t, client, http.MethodGet, ts.APIURL("/tasks/"), nil)
	tasksResp.Body.Close()
	assert.Equal(t, http.StatusOK, tasksResp.StatusCode)

	logoutResp := testutil.PostJSON(t, client, ts.APIURL("/auth/logout"), nil)
	logoutResp.Body.Close()
	assert.Equal(t, http.StatusOK, logoutResp.StatusCode)

	// And is rejected afterwards.
	afterResp := testutil.DoJSON(t, client, http.MethodGet, ts.APIURL("/tasks/"), nil)
	afterResp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, afterResp.StatusCode)
}

func TestAuthHandler_LogoutWithoutSession(t *testing.T) {
	ts := testutil.NewTestServer(t)
	client := ts.NewClient(t)

	resp := testutil.PostJSON(t, client, ts.APIURL("/auth/logout"), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
