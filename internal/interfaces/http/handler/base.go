package handler

import (
	"errors"
	"net/http"

	"github.com/edusite/backend/internal/domain/shared"
	"github.com/edusite/backend/internal/infrastructure/logger"
	"github.com/edusite/backend/internal/interfaces/http/dto"
	"github.com/edusite/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// msgUnexpected is shown for failures whose details must not leak to the client
const msgUnexpected = "An unexpected error occurred"

// BaseHandler provides common handler utilities
type BaseHandler struct {
	logger *zap.Logger
}

// log returns the request-scoped logger, falling back to the handler's own
func (h *BaseHandler) log(c *gin.Context) *zap.Logger {
	return logger.LOr(c.Request.Context(), h.logger)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// ValidationError sends a 400 validation error response with details
func (h *BaseHandler) ValidationError(c *gin.Context, details []dto.ValidationDetail) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Request validation failed",
		middleware.GetRequestID(c),
		details,
	))
}

// HandleError converts an error into a JSON response.
// Domain errors keep their code and message; anything else is a 500 and is logged.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	code, status, message := h.classify(c, err)
	h.Error(c, status, code, message)
}

// classify maps an error to its response code, HTTP status and client-facing message
func (h *BaseHandler) classify(c *gin.Context, err error) (string, int, string) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		return code, dto.GetHTTPStatus(code), domainErr.Message
	}

	h.log(c).Error("Request failed",
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	return dto.ErrCodeInternal, http.StatusInternalServerError, msgUnexpected
}
