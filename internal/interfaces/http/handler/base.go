package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hcm/backend/internal/domain/connector"
	"github.com/hcm/backend/internal/domain/hcm"
	"github.com/hcm/backend/internal/interfaces/http/dto"
)

// RequestIDKey is the context key for request ID
const RequestIDKey = "request_id"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	if id := c.GetHeader("X-Request-ID"); id != "" {
		return id
	}
	return ""
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Accepted sends a 202 accepted response for fire-and-forget operations
func (h *BaseHandler) Accepted(c *gin.Context, data any) {
	c.JSON(http.StatusAccepted, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	requestID := getRequestID(c)
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Conflict sends a 409 conflict response
func (h *BaseHandler) Conflict(c *gin.Context, code, message string) {
	h.Error(c, http.StatusConflict, code, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleDomainError converts domain errors to HTTP responses
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	code := dto.ErrCodeInternal
	message := "An unexpected error occurred"

	switch {
	case errors.Is(err, hcm.ErrConfigNotFound):
		code, message = dto.ErrCodeNotFound, err.Error()
	case errors.Is(err, hcm.ErrSyncLogNotFound):
		code, message = dto.ErrCodeNotFound, err.Error()
	case errors.Is(err, hcm.ErrSyncAlreadyRunning):
		code, message = dto.ErrCodeSyncInProgress, err.Error()
	case errors.Is(err, hcm.ErrConfigInactive):
		code, message = dto.ErrCodeConfigInactive, err.Error()
	case errors.Is(err, hcm.ErrInvalidSyncType):
		code, message = dto.ErrCodeBadRequest, err.Error()
	case errors.Is(err, connector.ErrVendorUnknown):
		code, message = dto.ErrCodeVendorUnknown, err.Error()
	case errors.Is(err, connector.ErrVendorNotConfigured):
		code, message = dto.ErrCodeConfigInvalid, err.Error()
	}

	h.Error(c, dto.GetHTTPStatus(code), code, message)
}
