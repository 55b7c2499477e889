package base

import (
	"context"
	"sync"

	"github.com/mantonx/curator/internal/events"
	"gorm.io/gorm"
)

// BaseModule provides the identity, database and event bus plumbing shared
// by every module.
type BaseModule struct {
	id          string
	name        string
	version     string
	core        bool
	initialized bool
	db          *gorm.DB
	eventBus    events.EventBus
	mu          sync.RWMutex
}

// NewBaseModule creates a new base module with common properties
func NewBaseModule(id, name, version string, core bool) *BaseModule {
	return &BaseModule{
		id:      id,
		name:    name,
		version: version,
		core:    core,
	}
}

func (m *BaseModule) ID() string {
	return m.id
}

func (m *BaseModule) Name() string {
	return m.name
}

func (m *BaseModule) Version() string {
	return m.version
}

func (m *BaseModule) Core() bool {
	return m.core
}

func (m *BaseModule) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetInitialized marks the module as initialized
func (m *BaseModule) SetInitialized(initialized bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initialized = initialized
}

// SetDB sets the database connection
func (m *BaseModule) SetDB(db *gorm.DB) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.db = db
}

// GetDB returns the database connection
func (m *BaseModule) GetDB() *gorm.DB {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.db
}

// SetEventBus sets the event bus
func (m *BaseModule) SetEventBus(eventBus events.EventBus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventBus = eventBus
}

// GetEventBus returns the event bus
func (m *BaseModule) GetEventBus() events.EventBus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.eventBus
}

// HealthCheck reports whether the module is initialized and its database
// answers a ping.
func (m *BaseModule) HealthCheck(ctx context.Context) error {
	if !m.IsInitialized() {
		return ErrModuleNotInitialized
	}

	if db := m.GetDB(); db != nil {
		sqlDB, err := db.DB()
		if err != nil {
			return NewModuleError(ErrDatabaseConnection.Code, ErrDatabaseConnection.Message, err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return NewModuleError(ErrDatabasePing.Code, ErrDatabasePing.Message, err)
		}
	}

	return nil
}

// Common errors
var (
	ErrModuleNotInitialized = &ModuleError{Code: "MODULE_NOT_INITIALIZED", Message: "Module is not initialized"}
	ErrDatabaseConnection   = &ModuleError{Code: "DATABASE_CONNECTION", Message: "Failed to get database connection"}
	ErrDatabasePing         = &ModuleError{Code: "DATABASE_PING", Message: "Database ping failed"}
)

// ModuleError provides structured error handling
type ModuleError struct {
	Code    string
	Message string
	Cause   error
}

func (e *ModuleError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ModuleError) Unwrap() error {
	return e.Cause
}

// NewModuleError creates a new module error with optional cause
func NewModuleError(code, message string, cause error) *ModuleError {
	return &ModuleError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
