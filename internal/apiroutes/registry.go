// Package apiroutes records the routes each module mounts so they can be listed at /api.
package apiroutes

import (
	"sort"
	"sync"
)

// APIRoute defines the structure for an API route entry.
type APIRoute struct {
	Path        string `json:"path"`
	Method      string `json:"method"`
	Description string `json:"description"`
	Module      string `json:"module,omitempty"`
}

// Registry holds the routes registered by modules
type Registry struct {
	mu     sync.RWMutex
	routes []APIRoute
}

// New creates an empty route registry
func New() *Registry {
	return &Registry{routes: make([]APIRoute, 0)}
}

// Register adds a new route to the registry. Re-registering the same
// method and path replaces the description.
func (r *Registry) Register(module, method, path, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, route := range r.routes {
		if route.Method == method && route.Path == path {
			r.routes[i].Description = description
			r.routes[i].Module = module
			return
		}
	}
	r.routes = append(r.routes, APIRoute{
		Path:        path,
		Method:      method,
		Description: description,
		Module:      module,
	})
}

// Get returns a copy of the registered routes sorted by path then method
func (r *Registry) Get() []APIRoute {
	r.mu.RLock()
	routes := make([]APIRoute, len(r.routes))
	copy(routes, r.routes)
	r.mu.RUnlock()

	sort.SliceStable(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})
	return routes
}

// Len returns the number of registered routes
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.routes)
}
