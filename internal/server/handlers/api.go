// Package handlers holds the service-level HTTP endpoints.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/cinemadb/internal/apiroutes"
)

// APIHandler serves route discovery
type APIHandler struct {
	routes *apiroutes.Registry
}

// NewAPIHandler creates a discovery handler over routes
func NewAPIHandler(routes *apiroutes.Registry) *APIHandler {
	return &APIHandler{routes: routes}
}

// GetRoutes serves the /api endpoint, listing available routes
func (h *APIHandler) GetRoutes(c *gin.Context) {
	registered := h.routes.Get()

	endpoints := make(map[string]string)
	for _, route := range registered {
		switch route.Path {
		case "/movies/", "/directors/", "/genres/", "/health", "/api":
			if route.Method == http.MethodGet {
				endpoints[strings.Trim(route.Path, "/")] = route.Path
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"endpoints":         endpoints,
		"status":            "OK",
		"registered_routes": registered,
	})
}
