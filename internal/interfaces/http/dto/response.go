package dto

import "time"

// Response represents a standard API response
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	RequestID string             `json:"request_id,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Details   []ValidationDetail `json:"details,omitempty"`
	Help      string             `json:"help,omitempty"`
}

// ValidationDetail describes a single rejected form field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewErrorResponse creates an error response.
// Legacy domain codes are normalized to the ERR_ format.
func NewErrorResponse(code, message string) Response {
	return NewErrorResponseWithRequestID(code, message, "")
}

// NewErrorResponseWithRequestID creates an error response carrying the request ID
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:      NormalizeErrorCode(code),
			Message:   message,
			RequestID: requestID,
			Timestamp: time.Now(),
		},
	}
}

// NewErrorResponseWithHelp creates an error response with a help link
func NewErrorResponseWithHelp(code, message, requestID, help string) Response {
	resp := NewErrorResponseWithRequestID(code, message, requestID)
	resp.Error.Help = help
	return resp
}

// NewValidationErrorResponse creates a 400 validation response with per-field details
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) Response {
	resp := NewErrorResponseWithRequestID(ErrCodeValidation, message, requestID)
	resp.Error.Details = details
	return resp
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Products int64  `json:"products"`
}
