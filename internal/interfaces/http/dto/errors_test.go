package dto

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/edusite/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeUnknown, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeValidationRequired, http.StatusBadRequest},
		{ErrCodeValidationFormat, http.StatusBadRequest},
		{ErrCodeValidationRange, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeInvalidCredentials, http.StatusUnauthorized},
		{ErrCodeTokenExpired, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"NOT_FOUND", ErrCodeNotFound},
		{"INVALID_INPUT", ErrCodeInvalidInput},
		{"UNAUTHORIZED", ErrCodeUnauthorized},
		{"INVALID_CREDENTIALS", ErrCodeInvalidCredentials},
		{"VALIDATION_ERROR", ErrCodeValidation},
		{"BAD_REQUEST", ErrCodeBadRequest},
		{"INTERNAL_ERROR", ErrCodeInternal},
		// New codes should pass through unchanged
		{ErrCodeNotFound, ErrCodeNotFound},
		{ErrCodeValidationFormat, ErrCodeValidationFormat},
		// Unknown codes should pass through unchanged
		{"CUSTOM_ERROR", "CUSTOM_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestDomainCodesHaveHTTPStatus(t *testing.T) {
	// Every code the domain layer produces must map to a non-500 status
	domainCodes := []string{
		shared.CodeNotFound,
		shared.CodeInvalidInput,
		shared.CodeValidation,
		shared.CodeValidationFormat,
		shared.CodeValidationRange,
		shared.CodeUnauthorized,
		shared.CodeInvalidCredentials,
	}

	for _, code := range domainCodes {
		t.Run(code, func(t *testing.T) {
			status := GetHTTPStatus(NormalizeErrorCode(code))
			assert.Less(t, status, http.StatusInternalServerError)
		})
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("NOT_FOUND", "Resource not found")

	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code) // Should be normalized
	assert.Equal(t, "Resource not found", resp.Error.Message)
	assert.NotZero(t, resp.Error.Timestamp)
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	requestID := "req-123-456"
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Resource not found", requestID)

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, requestID, resp.Error.RequestID)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "name", Message: "This field is required"},
		{Field: "price", Message: "This field is required"},
	}

	resp := NewValidationErrorResponse("Validation failed", "req-789", details)

	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-789", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "name", resp.Error.Details[0].Field)
}

func TestNewErrorResponseWithHelp(t *testing.T) {
	help := "https://docs.example.com/errors/auth"
	resp := NewErrorResponseWithHelp(ErrCodeUnauthorized, "Not authenticated", "req-001", help)

	require.NotNil(t, resp.Error)
	assert.Equal(t, help, resp.Error.Help)
}

func TestErrorResponseJSON(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Product not found", "req-test-123")

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"request_id":"req-test-123"`)
	assert.NotContains(t, string(data), `"data"`)

	var decoded Response
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.False(t, decoded.Success)
	assert.Equal(t, ErrCodeNotFound, decoded.Error.Code)
	assert.Equal(t, "Product not found", decoded.Error.Message)
}

func TestErrorResponseTimestamp(t *testing.T) {
	before := time.Now()
	resp := NewErrorResponse(ErrCodeInternal, "Server error")
	after := time.Now()

	assert.False(t, resp.Error.Timestamp.Before(before))
	assert.False(t, resp.Error.Timestamp.After(after))
}

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse(map[string]string{"name": "test"})

	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}
