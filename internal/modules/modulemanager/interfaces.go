package modulemanager

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/cinemadb/internal/apiroutes"
	"gorm.io/gorm"
)

// Module defines the interface that all modules must implement
type Module interface {
	ID() string                // Unique identifier for the module
	Name() string              // Display name for the module
	Core() bool                // Whether this is a core module
	Migrate(db *gorm.DB) error // Create the module's tables if absent
	Init() error               // Initialize the module
}

// RouteRegistrar is an optional interface for modules that need to register routes
type RouteRegistrar interface {
	RegisterRoutes(router *gin.Engine, routes *apiroutes.Registry)
}

// DependencyProvider is an optional interface for modules that declare dependencies
type DependencyProvider interface {
	// Dependencies returns the list of module IDs this module depends on
	Dependencies() []string
}

// HealthChecker is an optional interface for modules that can report health status
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Shutdowner is an optional interface for modules holding resources to release
type Shutdowner interface {
	Shutdown(ctx context.Context) error
}
