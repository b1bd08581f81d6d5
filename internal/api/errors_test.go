package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/cinemadb/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(ErrorMiddleware())
	r.GET("/probe", handler)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-Request-ID", "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRespondWithValidationError(t *testing.T) {
	w := serve(t, func(c *gin.Context) {
		RespondWithValidationError(c, "invalid request body", "name is required")
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, string(types.ErrorCodeValidation), body.Error.Code)
	assert.Equal(t, "name is required", body.Error.Details)
	assert.Equal(t, "req-1", body.Error.RequestID)
}

func TestRespondWithNotFoundHasEmptyBody(t *testing.T) {
	w := serve(t, func(c *gin.Context) {
		RespondWithNotFound(c, "genre", "9")
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestPlainErrorBecomesInternal(t *testing.T) {
	w := serve(t, func(c *gin.Context) {
		RespondWithError(c, errors.New("connection reset"))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, string(types.ErrorCodeInternal), body.Error.Code)
}

func TestErrorMiddlewareRecoversPanic(t *testing.T) {
	w := serve(t, func(c *gin.Context) {
		panic("boom")
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "panic recovered")
}
