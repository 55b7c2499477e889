package services

import (
	"fmt"
	"sort"
	"sync"
)

// ServiceRegistry maps service names to implementations. Modules register
// during Init; consumers look services up by name and interface type.
type ServiceRegistry struct {
	mu       sync.RWMutex
	services map[string]interface{}
}

// NewServiceRegistry creates an empty registry.
func NewServiceRegistry() *ServiceRegistry {
	return &ServiceRegistry{services: make(map[string]interface{})}
}

var globalRegistry = NewServiceRegistry()

// Global returns the process-wide registry.
func Global() *ServiceRegistry {
	return globalRegistry
}

// Register stores service under name, replacing any previous entry.
func (r *ServiceRegistry) Register(name string, service interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[name] = service
}

// Names returns all registered service names, sorted.
func (r *ServiceRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.services))
	for name := range r.services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get retrieves a service by name with type safety
func Get[T any](r *ServiceRegistry, name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var zero T

	service, exists := r.services[name]
	if !exists {
		return zero, fmt.Errorf("service '%s' not found", name)
	}

	typed, ok := service.(T)
	if !ok {
		return zero, fmt.Errorf("service '%s' has wrong type %T", name, service)
	}
	return typed, nil
}

// GetCatalogService returns the catalog service from the global registry.
func GetCatalogService() (CatalogService, error) {
	return Get[CatalogService](globalRegistry, CatalogServiceName)
}
