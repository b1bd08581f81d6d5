package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
)

func newRouter(log hclog.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), RequestLogger(log))
	r.GET("/genres/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})
	return r
}

func TestRequestIDGenerated(t *testing.T) {
	r := newRouter(hclog.NewNullLogger())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/genres/", nil))

	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, w.Body.String())
}

func TestRequestIDReused(t *testing.T) {
	r := newRouter(hclog.NewNullLogger())
	supplied := uuid.New().String()

	req := httptest.NewRequest(http.MethodGet, "/genres/", nil)
	req.Header.Set(RequestIDHeader, supplied)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, supplied, w.Header().Get(RequestIDHeader))
}

func TestRequestIDRejectsGarbage(t *testing.T) {
	r := newRouter(hclog.NewNullLogger())

	req := httptest.NewRequest(http.MethodGet, "/genres/", nil)
	req.Header.Set(RequestIDHeader, "not a uuid\r\n")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.NotEqual(t, "not a uuid\r\n", w.Header().Get(RequestIDHeader))
}

func TestRequestLoggerWritesLine(t *testing.T) {
	var buf bytes.Buffer
	log := hclog.New(&hclog.LoggerOptions{Output: &buf, Level: hclog.Info})
	r := newRouter(log)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/genres/?x=1", nil))

	assert.Contains(t, buf.String(), "http request")
	assert.Contains(t, buf.String(), "path=/genres/")
	assert.Contains(t, buf.String(), "status=200")
}
