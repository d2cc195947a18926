package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors, including store failures
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field cannot be parsed, e.g. a non-numeric price
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
	// ErrCodeValidationRange is used when a value is out of range
	ErrCodeValidationRange = "ERR_VALIDATION_RANGE"
	// ErrCodeValidationLength is used when a field length is invalid
	ErrCodeValidationLength = "ERR_VALIDATION_LENGTH"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when a session is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeInvalidCredentials is used when login fails
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	// ErrCodeTokenExpired is used when the session token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the session token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
	// ErrCodeForbidden is used when the client address is not allowed
	ErrCodeForbidden = "ERR_FORBIDDEN"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,
	ErrCodeValidationRange:    http.StatusBadRequest,
	ErrCodeValidationLength:   http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,

	// Resource errors
	ErrCodeNotFound: http.StatusNotFound,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping maps domain error codes to the standardized HTTP codes
var LegacyErrorCodeMapping = map[string]string{
	"NOT_FOUND":           ErrCodeNotFound,
	"INVALID_INPUT":       ErrCodeInvalidInput,
	"UNAUTHORIZED":        ErrCodeUnauthorized,
	"INVALID_CREDENTIALS": ErrCodeInvalidCredentials,
	"VALIDATION_ERROR":    ErrCodeValidation,
	"BAD_REQUEST":         ErrCodeBadRequest,
	"INTERNAL_ERROR":      ErrCodeInternal,
}

// NormalizeErrorCode converts a legacy error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := LegacyErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
