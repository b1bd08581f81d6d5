package catalogmodule

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/cinemadb/internal/apiroutes"
	"github.com/mantonx/cinemadb/internal/config"
	"github.com/mantonx/cinemadb/internal/database"
	"github.com/mantonx/cinemadb/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := database.Open(config.DatabaseConfig{Type: "sqlite", DatabasePath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	m := NewModule(events.NewNoopEventBus(), nil)
	assert.Error(t, m.Init())
	assert.Error(t, m.HealthCheck(context.Background()))

	require.NoError(t, m.Migrate(db))
	require.NoError(t, m.Init())
	assert.NoError(t, m.HealthCheck(context.Background()))
	assert.Equal(t, []string{"system.events"}, m.Dependencies())

	router := gin.New()
	routes := apiroutes.New()
	m.RegisterRoutes(router, routes)
	assert.Equal(t, 15, routes.Len())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/directors/", strings.NewReader(`{"name":"Chantal Akerman"}`)))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/directors/1", w.Header().Get("Location"))
}
