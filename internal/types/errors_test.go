package types

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMessage(t *testing.T) {
	err := NewValidationError("invalid request body", "unknown field \"age\"")
	assert.Equal(t, `[VALIDATION_ERROR] invalid request body: unknown field "age"`, err.Error())
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
	assert.Equal(t, SeverityWarning, err.Severity)

	plain := NewAppError(ErrorCodeConflict, "already exists", http.StatusConflict)
	assert.Equal(t, "[CONFLICT] already exists", plain.Error())
}

func TestInternalErrorUnwraps(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := NewInternalError("failed to list directors", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, SeverityCritical, err.Severity)

	var appErr *AppError
	assert.True(t, errors.As(error(err), &appErr))
	assert.Equal(t, ErrorCodeInternal, appErr.Code)
}

func TestNotFoundErrorContext(t *testing.T) {
	err := NewNotFoundError("director", "42")
	assert.Equal(t, "director not found", err.Message)
	assert.Equal(t, "42", err.Context["id"])
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
}

func TestHTTPStatusFromErrorCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatusFromErrorCode(ErrorCodeValidation))
	assert.Equal(t, http.StatusNotFound, HTTPStatusFromErrorCode(ErrorCodeNotFound))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusFromErrorCode(ErrorCodeUnknown))
}
