package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v and verifies success
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertErrorResponse verifies an error response with expected status and message
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	var payload struct {
		Error string `json:"error"`
	}
	AssertJSONResponse(t, resp, &payload)
	assert.Contains(t, payload.Error, expectedMessage, "error message mismatch")
}

// AssertValidationDetails verifies a 400 validation response contains every
// expected rule message
func AssertValidationDetails(t *testing.T, resp *http.Response, expected ...string) {
	t.Helper()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "unexpected status code")

	var payload struct {
		Error   string   `json:"error"`
		Details []string `json:"details"`
	}
	AssertJSONResponse(t, resp, &payload)
	assert.Equal(t, "validation error", payload.Error)
	for _, detail := range expected {
		assert.Contains(t, payload.Details, detail)
	}
}
