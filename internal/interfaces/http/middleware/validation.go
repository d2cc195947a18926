package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/edusite/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator makes validation errors report the form field name
// (falling back to the json name) instead of the Go struct field name.
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
	}
}

func fieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
	if name == "" {
		name = strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	}
	if name == "-" {
		return ""
	}
	return name
}

// ValidationDetails converts binding errors into per-field details.
// Errors that are not validator errors yield no details.
func ValidationDetails(err error) []dto.ValidationDetail {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	details := make([]dto.ValidationDetail, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, dto.ValidationDetail{
			Field:   e.Field(),
			Message: getValidationMessage(e),
		})
	}
	return details
}

// FormatValidationErrors formats validation errors into a standard response
func FormatValidationErrors(err error, requestID string) dto.Response {
	return dto.NewValidationErrorResponse("Request validation failed", requestID, ValidationDetails(err))
}

// HandleValidationError returns a validation error response
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, GetRequestID(c)))
}

// getValidationMessage returns a human-readable validation message
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if e.Type().Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Type().Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "len":
		return "Must be exactly " + e.Param() + " characters"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "numeric":
		return "Must be numeric"
	case "url":
		return "Invalid URL format"
	default:
		return "Invalid value"
	}
}
