// Package server assembles the HTTP router from the configured modules.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"github.com/mantonx/cinemadb/internal/api"
	"github.com/mantonx/cinemadb/internal/apiroutes"
	"github.com/mantonx/cinemadb/internal/config"
	"github.com/mantonx/cinemadb/internal/events"
	"github.com/mantonx/cinemadb/internal/middleware"
	"github.com/mantonx/cinemadb/internal/modules/catalogmodule"
	"github.com/mantonx/cinemadb/internal/modules/eventsmodule"
	"github.com/mantonx/cinemadb/internal/modules/modulemanager"
	"github.com/mantonx/cinemadb/internal/server/handlers"
	"gorm.io/gorm"
)

// Dependencies are the process-owned resources the server is built from
type Dependencies struct {
	Config *config.Config
	DB     *gorm.DB
	Logger hclog.Logger
}

// Server wires modules, middleware and routes together
type Server struct {
	cfg     *config.Config
	logger  hclog.Logger
	bus     events.EventBus
	modules *modulemanager.ModuleRegistry
	routes  *apiroutes.Registry
	router  *gin.Engine
}

// New loads every module and builds the router
func New(deps Dependencies) (*Server, error) {
	if deps.Config == nil {
		deps.Config = config.DefaultConfig()
	}
	if deps.DB == nil {
		return nil, fmt.Errorf("server requires a database handle")
	}
	if deps.Logger == nil {
		deps.Logger = hclog.NewNullLogger()
	}

	s := &Server{
		cfg:     deps.Config,
		logger:  deps.Logger,
		modules: modulemanager.NewRegistry(deps.Logger.Named("modules")),
		routes:  apiroutes.New(),
	}

	if deps.Config.Events.Enabled {
		s.bus = events.NewEventBus(deps.Config.Events.BufferSize, deps.Logger.Named("eventbus"))
	} else {
		s.bus = events.NewNoopEventBus()
	}

	for _, m := range []modulemanager.Module{
		eventsmodule.NewModule(s.bus, deps.Logger),
		catalogmodule.NewModule(s.bus, deps.Logger),
	} {
		if err := s.modules.Register(m); err != nil {
			return nil, err
		}
	}

	if err := s.modules.LoadAll(deps.DB); err != nil {
		return nil, fmt.Errorf("failed to load modules: %w", err)
	}

	s.router = s.setupRouter()
	return s, nil
}

// Router returns the configured gin engine
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Routes returns the route registry
func (s *Server) Routes() *apiroutes.Registry {
	return s.routes
}

// HTTPServer builds the net/http server for the configured address
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}
}

// Shutdown stops the modules in reverse order
func (s *Server) Shutdown(ctx context.Context) error {
	return s.modules.Shutdown(ctx)
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(s.logger.Named("http")))
	r.Use(middleware.ErrorLogger(s.logger.Named("http")))
	r.Use(api.ErrorMiddleware())

	if s.cfg.Server.EnableCORS {
		r.Use(cors.New(corsConfig(s.cfg.Server.AllowedOrigins)))
	}

	health := handlers.NewHealthHandler(s.modules, time.Now())
	discovery := handlers.NewAPIHandler(s.routes)

	r.GET("/health", health.GetHealth)
	r.GET("/api", discovery.GetRoutes)
	s.routes.Register("system", http.MethodGet, "/health", "Database and process health")
	s.routes.Register("system", http.MethodGet, "/api", "Lists all available API endpoints")

	s.modules.RegisterRoutes(r, s.routes)
	return r
}

// corsConfig allows every origin unless specific origins are configured
func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader}
	cfg.ExposeHeaders = []string{"Location", middleware.RequestIDHeader}
	cfg.MaxAge = 12 * time.Hour

	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
