package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/cinemadb/internal/apiroutes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticChecker map[string]error

func (s staticChecker) HealthCheck(context.Context) map[string]error { return s }

func serve(t *testing.T, h gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	h(c)
	return w
}

func TestHealthOK(t *testing.T) {
	h := NewHealthHandler(staticChecker{}, time.Now().Add(-time.Minute))
	w := serve(t, h.GetHealth)

	require.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ok", resp.Database)
	assert.Positive(t, resp.System.Goroutines)
	assert.Empty(t, resp.Components)
}

func TestHealthDegradedWhenDatabaseFails(t *testing.T) {
	h := NewHealthHandler(staticChecker{"system.catalog": errors.New("sql: database is closed")}, time.Now())
	w := serve(t, h.GetHealth)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "unavailable", resp.Database)
	assert.Equal(t, "sql: database is closed", resp.Components["system.catalog"])
}

func TestGetRoutes(t *testing.T) {
	routes := apiroutes.New()
	routes.Register("catalog", http.MethodGet, "/movies/", "List movies")
	routes.Register("catalog", http.MethodPost, "/movies/", "Create a movie")
	routes.Register("system", http.MethodGet, "/api", "Lists all available API endpoints")

	w := serve(t, NewAPIHandler(routes).GetRoutes)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Endpoints        map[string]string     `json:"endpoints"`
		RegisteredRoutes []apiroutes.APIRoute `json:"registered_routes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "/movies/", body.Endpoints["movies"])
	assert.Equal(t, "/api", body.Endpoints["api"])
	assert.Len(t, body.RegisteredRoutes, 3)
}
