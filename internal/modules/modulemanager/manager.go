package modulemanager

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/curator/internal/logger"
	"gorm.io/gorm"
)

// ModuleRegistry manages module registration and initialization
type ModuleRegistry struct {
	modules         map[string]Module
	disabledModules map[string]bool
	mu              sync.RWMutex
	initialized     bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *ModuleRegistry {
	return &ModuleRegistry{
		modules:         make(map[string]Module),
		disabledModules: make(map[string]bool),
	}
}

// Register adds a module to the registry
func (r *ModuleRegistry) Register(m Module) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		logger.Warn("module registered after initialization", "module", m.ID())
	}

	r.modules[m.ID()] = m
	logger.Debug("module registered", "module", m.ID(), "name", m.Name())
}

// DisableModule marks a module as disabled. Core modules cannot be disabled;
// LoadAll fails if one is.
func (r *ModuleRegistry) DisableModule(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disabledModules[id] = true
}

// LoadAll migrates and initializes every enabled module in ID order.
func (r *ModuleRegistry) LoadAll(db *gorm.DB) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		logger.Warn("module system already initialized")
		return nil
	}

	for _, module := range r.sortedLocked() {
		if r.disabledModules[module.ID()] {
			if module.Core() {
				return fmt.Errorf("attempted to disable core module: %s", module.ID())
			}
			logger.Warn("skipping disabled module", "module", module.ID())
			continue
		}

		if err := module.Migrate(db); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", module.Name(), err)
		}
		if err := module.Init(); err != nil {
			return fmt.Errorf("failed to initialize %s: %w", module.Name(), err)
		}

		logger.Info("module loaded", "module", module.ID())
	}

	r.initialized = true
	return nil
}

// GetModule returns a registered module by ID
func (r *ModuleRegistry) GetModule(id string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[id]
	return m, ok
}

// ListModules returns all registered modules sorted by ID
func (r *ModuleRegistry) ListModules() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedLocked()
}

// RegisterRoutes registers routes for all enabled modules that implement RouteRegistrar
func (r *ModuleRegistry) RegisterRoutes(api *gin.RouterGroup) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, module := range r.sortedLocked() {
		if r.disabledModules[module.ID()] {
			continue
		}
		if routeRegistrar, ok := module.(RouteRegistrar); ok {
			routeRegistrar.RegisterRoutes(api)
		}
	}
}

// HealthCheck asks every HealthChecker module for its status.
func (r *ModuleRegistry) HealthCheck(ctx context.Context) map[string]HealthStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	statuses := make(map[string]HealthStatus, len(r.modules))
	for id, module := range r.modules {
		checker, ok := module.(HealthChecker)
		if !ok {
			statuses[id] = HealthStatus{Status: HealthStateUnknown}
			continue
		}
		if err := checker.HealthCheck(ctx); err != nil {
			statuses[id] = HealthStatus{Status: HealthStateUnhealthy, Message: err.Error()}
			continue
		}
		statuses[id] = HealthStatus{Status: HealthStateHealthy}
	}
	return statuses
}

func (r *ModuleRegistry) sortedLocked() []Module {
	list := make([]Module, 0, len(r.modules))
	for _, m := range r.modules {
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID() < list[j].ID() })
	return list
}
