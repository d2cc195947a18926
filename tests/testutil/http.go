package testutil

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/edusite/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DecodeResponse parses the standard response envelope
func DecodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "Failed to parse JSON response: %s", w.Body.String())
	return resp
}

// DecodeData parses the data field of a success envelope into T
func DecodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var resp struct {
		Success bool `json:"success"`
		Data    T    `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "Failed to parse JSON response: %s", w.Body.String())
	require.True(t, resp.Success, "expected a success response: %s", w.Body.String())
	return resp.Data
}

// AssertErrorResponse asserts the error envelope carries the expected code
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedCode string) {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code, "Unexpected status code: %s", w.Body.String())
	resp := DecodeResponse(t, w)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error, "Error info should not be nil")
	assert.Equal(t, expectedCode, resp.Error.Code)
}
