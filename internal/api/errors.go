// Package api provides error handling utilities for HTTP APIs
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/cinemadb/internal/logger"
	"github.com/mantonx/cinemadb/internal/types"
)

// ErrorResponse represents the standard error response format
type ErrorResponse struct {
	Error   ErrorDetails `json:"error"`
	Success bool         `json:"success"`
}

// ErrorDetails contains detailed error information
type ErrorDetails struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Context   map[string]interface{} `json:"context,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// RespondWithError sends a structured error response.
// Not-found errors are answered with the status code only.
func RespondWithError(c *gin.Context, err error) {
	requestID := requestIDFrom(c)

	var appErr *types.AppError
	if !errors.As(err, &appErr) {
		appErr = types.NewInternalError("unexpected error", err)
	}

	logError(appErr, c, requestID)

	if appErr.HTTPStatus == http.StatusNotFound {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	c.AbortWithStatusJSON(appErr.HTTPStatus, ErrorResponse{
		Success: false,
		Error: ErrorDetails{
			Code:      string(appErr.Code),
			Message:   appErr.Message,
			Details:   appErr.Details,
			Context:   appErr.Context,
			RequestID: requestID,
		},
	})
}

// RespondWithValidationError sends a validation error response
func RespondWithValidationError(c *gin.Context, message string, details ...string) {
	RespondWithError(c, types.NewValidationError(message, details...))
}

// RespondWithNotFound sends an empty not-found response
func RespondWithNotFound(c *gin.Context, resource string, id string) {
	RespondWithError(c, types.NewNotFoundError(resource, id))
}

// RespondWithInternalError sends an internal error response
func RespondWithInternalError(c *gin.Context, message string, cause error) {
	RespondWithError(c, types.NewInternalError(message, cause))
}

func requestIDFrom(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// logError logs the error with appropriate severity
func logError(err *types.AppError, c *gin.Context, requestID string) {
	fields := []interface{}{
		"error_code", err.Code,
		"error_message", err.Message,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"request_id", requestID,
	}

	if err.Details != "" {
		fields = append(fields, "details", err.Details)
	}

	for k, v := range err.Context {
		fields = append(fields, k, v)
	}

	if err.Cause != nil {
		fields = append(fields, "cause", err.Cause.Error())
	}

	switch err.Severity {
	case types.SeverityCritical, types.SeverityError:
		logger.Error("request failed", fields...)
	case types.SeverityWarning:
		logger.Warn("request rejected", fields...)
	default:
		logger.Debug("request miss", fields...)
	}
}

// ErrorMiddleware recovers from panics and answers with an internal error
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				var err error
				switch v := r.(type) {
				case error:
					err = v
				case string:
					err = errors.New(v)
				default:
					err = fmt.Errorf("panic: %v", v)
				}

				appErr := types.NewInternalError("panic recovered", err)
				RespondWithError(c, appErr)
			}
		}()

		c.Next()
	}
}
