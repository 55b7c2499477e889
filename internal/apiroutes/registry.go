// Package apiroutes keeps the list of API endpoints served at /api for
// discovery.
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
}

// Registry holds registered routes.
type Registry struct {
	routes []APIRoute
	mu     sync.RWMutex
}

// NewRegistry creates an empty route registry.
func NewRegistry() *Registry {
	return &Registry{routes: make([]APIRoute, 0)}
}

// Register adds a new route to the API registry.
func (r *Registry) Register(path, method, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, APIRoute{
		Path:        path,
		Method:      method,
		Description: description,
	})
}

// Get returns a copy of the registered routes sorted by path then method.
func (r *Registry) Get() []APIRoute {
	r.mu.RLock()
	defer r.mu.RUnlock()

	routes := make([]APIRoute, len(r.routes))
	copy(routes, r.routes)
	sort.SliceStable(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})
	return routes
}
