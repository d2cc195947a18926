package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code.
// This lets errors.Is match a sentinel against an error built with a custom message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes shared across bounded contexts
const (
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeValidation         = "VALIDATION_ERROR"
	CodeValidationFormat   = "ERR_VALIDATION_FORMAT"
	CodeValidationRange    = "ERR_VALIDATION_RANGE"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
)

// Common domain errors
var (
	ErrNotFound     = NewDomainError(CodeNotFound, "Resource not found")
	ErrInvalidInput = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrValidation   = NewDomainError(CodeValidation, "Validation failed")
	ErrUnauthorized = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
)

// NewValidationError creates a validation error for a missing or empty field
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewParseError creates an error for a value that could not be parsed
func NewParseError(message string) *DomainError {
	return NewDomainError(CodeValidationFormat, message)
}

// NewRangeError creates an error for a value outside its allowed range
func NewRangeError(message string) *DomainError {
	return NewDomainError(CodeValidationRange, message)
}
