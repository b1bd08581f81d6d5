// Package modulemanager registers the service's modules and drives their lifecycle.
package modulemanager

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"github.com/mantonx/cinemadb/internal/apiroutes"
	"gorm.io/gorm"
)

// ModuleRegistry manages module registration and initialization
type ModuleRegistry struct {
	logger      hclog.Logger
	modules     map[string]Module
	order       []Module
	mu          sync.RWMutex
	initialized bool
}

// NewRegistry creates an empty module registry
func NewRegistry(logger hclog.Logger) *ModuleRegistry {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &ModuleRegistry{
		logger:  logger,
		modules: make(map[string]Module),
	}
}

// Register adds a module to the registry
func (r *ModuleRegistry) Register(m Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		return fmt.Errorf("module %s registered after initialization", m.ID())
	}
	if _, exists := r.modules[m.ID()]; exists {
		return fmt.Errorf("module %s is already registered", m.ID())
	}

	r.modules[m.ID()] = m
	r.logger.Debug("module registered", "module", m.ID(), "name", m.Name())
	return nil
}

// LoadAll migrates and initializes all registered modules in dependency order
func (r *ModuleRegistry) LoadAll(db *gorm.DB) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		r.logger.Warn("module system already initialized")
		return nil
	}

	order, err := initializationOrder(r.modules)
	if err != nil {
		return fmt.Errorf("failed to determine initialization order: %w", err)
	}

	for i, module := range order {
		r.logger.Info("initializing module", "module", module.ID(), "step", fmt.Sprintf("%d/%d", i+1, len(order)))

		if err := module.Migrate(db); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", module.Name(), err)
		}
		if err := module.Init(); err != nil {
			return fmt.Errorf("failed to initialize %s: %w", module.Name(), err)
		}
	}

	r.order = order
	r.initialized = true
	r.logger.Info("modules loaded", "count", len(order))
	return nil
}

// GetModule returns a module by ID
func (r *ModuleRegistry) GetModule(id string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	module, exists := r.modules[id]
	return module, exists
}

// ListModules returns the loaded modules in initialization order
func (r *ModuleRegistry) ListModules() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Module(nil), r.order...)
}

// RegisterRoutes registers routes for all modules that implement RouteRegistrar
func (r *ModuleRegistry) RegisterRoutes(router *gin.Engine, routes *apiroutes.Registry) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, module := range r.order {
		if registrar, ok := module.(RouteRegistrar); ok {
			r.logger.Debug("registering routes", "module", module.ID())
			registrar.RegisterRoutes(router, routes)
		}
	}
}

// HealthCheck runs every module health check and returns the failures keyed by module ID
func (r *ModuleRegistry) HealthCheck(ctx context.Context) map[string]error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	failures := make(map[string]error)
	for _, module := range r.order {
		if checker, ok := module.(HealthChecker); ok {
			if err := checker.HealthCheck(ctx); err != nil {
				failures[module.ID()] = err
			}
		}
	}
	return failures
}

// Shutdown stops modules in reverse initialization order
func (r *ModuleRegistry) Shutdown(ctx context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var errs []error
	for i := len(r.order) - 1; i >= 0; i-- {
		module := r.order[i]
		if s, ok := module.(Shutdowner); ok {
			if err := s.Shutdown(ctx); err != nil {
				r.logger.Error("module shutdown failed", "module", module.ID(), "error", err)
				errs = append(errs, fmt.Errorf("%s: %w", module.ID(), err))
			}
		}
	}
	return errors.Join(errs...)
}
