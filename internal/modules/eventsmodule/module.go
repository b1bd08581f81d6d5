// Package eventsmodule runs the catalog event bus and streams it to WebSocket clients.
package eventsmodule

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"github.com/mantonx/cinemadb/internal/apiroutes"
	"github.com/mantonx/cinemadb/internal/base"
	"github.com/mantonx/cinemadb/internal/events"
	"gorm.io/gorm"
)

const (
	// ModuleID is the unique identifier for the events module
	ModuleID = "system.events"

	// ModuleName is the display name for the events module
	ModuleName = "Event Feed"
)

// Module owns the event bus lifecycle and the feed endpoints
type Module struct {
	base.BaseModule

	bus     events.EventBus
	logger  hclog.Logger
	handler *StreamHandler
}

// NewModule creates the events module around bus
func NewModule(bus events.EventBus, logger hclog.Logger) *Module {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Module{
		BaseModule: base.NewBaseModule(ModuleID, ModuleName, true),
		bus:        bus,
		logger:     logger.Named("events"),
	}
}

// Migrate is a no-op; events are not persisted
func (m *Module) Migrate(*gorm.DB) error {
	return nil
}

// Init starts the bus dispatcher
func (m *Module) Init() error {
	m.handler = NewStreamHandler(m.bus, m.logger)
	return m.bus.Start(context.Background())
}

// RegisterRoutes registers the feed endpoints
func (m *Module) RegisterRoutes(router *gin.Engine, routes *apiroutes.Registry) {
	group := router.Group("/events")
	{
		group.GET("/ws", m.handler.HandleWebSocket)
		group.GET("/stats", m.handler.GetStats)
	}

	routes.Register(ModuleID, http.MethodGet, "/events/ws", "Stream catalog events over WebSocket")
	routes.Register(ModuleID, http.MethodGet, "/events/stats", "Event bus counters")
}

// HealthCheck reports bus health
func (m *Module) HealthCheck(context.Context) error {
	return m.bus.Health()
}

// Shutdown stops the bus dispatcher
func (m *Module) Shutdown(ctx context.Context) error {
	m.logger.Info("stopping event bus")
	return m.bus.Stop(ctx)
}
