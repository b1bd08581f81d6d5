// Package catalogmodule serves the movie, director and genre resources.
package catalogmodule

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"github.com/mantonx/cinemadb/internal/apiroutes"
	"github.com/mantonx/cinemadb/internal/base"
	"github.com/mantonx/cinemadb/internal/database"
	"github.com/mantonx/cinemadb/internal/events"
	"github.com/mantonx/cinemadb/internal/modules/catalogmodule/api"
	"github.com/mantonx/cinemadb/internal/modules/catalogmodule/repository"
	"gorm.io/gorm"
)

const (
	// ModuleID is the unique identifier for the catalog module
	ModuleID = "system.catalog"

	// ModuleName is the display name for the catalog module
	ModuleName = "Catalog"
)

// Module implements the catalog resources as a module
type Module struct {
	base.BaseModule

	db       *gorm.DB
	eventBus events.EventBus
	logger   hclog.Logger

	directors *repository.DirectorRepository
	genres    *repository.GenreRepository
	movies    *repository.MovieRepository
	handler   *api.Handler
}

// NewModule creates the catalog module. Catalog writes are published on bus.
func NewModule(bus events.EventBus, logger hclog.Logger) *Module {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Module{
		BaseModule: base.NewBaseModule(ModuleID, ModuleName, true),
		eventBus:   bus,
		logger:     logger.Named("catalog"),
	}
}

// Dependencies lists the modules that must initialize first
func (m *Module) Dependencies() []string {
	return []string{"system.events"}
}

// Migrate creates the director, genre and movie tables
func (m *Module) Migrate(db *gorm.DB) error {
	m.logger.Info("migrating catalog schema")
	if err := database.Migrate(db); err != nil {
		return err
	}
	m.db = db
	return nil
}

// Init builds the repositories and HTTP handler
func (m *Module) Init() error {
	if m.db == nil {
		return fmt.Errorf("catalog module initialized before migration")
	}

	m.directors = repository.NewDirectorRepository(m.db)
	m.genres = repository.NewGenreRepository(m.db)
	m.movies = repository.NewMovieRepository(m.db)
	m.handler = api.NewHandler(m.directors, m.genres, m.movies, m.eventBus, m.logger)
	return nil
}

// RegisterRoutes registers HTTP routes
func (m *Module) RegisterRoutes(router *gin.Engine, routes *apiroutes.Registry) {
	api.RegisterRoutes(router, m.handler, routes, ModuleID)
}

// HealthCheck reports whether the database answers
func (m *Module) HealthCheck(ctx context.Context) error {
	if m.db == nil {
		return fmt.Errorf("database not initialized")
	}
	return database.Ping(ctx, m.db)
}
