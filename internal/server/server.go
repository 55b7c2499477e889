// Package server assembles the HTTP server: middleware, health and discovery
// endpoints, and the routes of every loaded module.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/curator/internal/apiroutes"
	"github.com/mantonx/curator/internal/config"
	"github.com/mantonx/curator/internal/events"
	"github.com/mantonx/curator/internal/logger"
	"github.com/mantonx/curator/internal/modules/catalogmodule"
	"github.com/mantonx/curator/internal/modules/modulemanager"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// Server owns the module registry and the gin engine serving it.
type Server struct {
	cfg     *config.Config
	db      *gorm.DB
	bus     events.EventBus
	modules *modulemanager.ModuleRegistry
	routes  *apiroutes.Registry
	engine  *gin.Engine
}

// New registers and loads every module and builds the router.
func New(cfg *config.Config, db *gorm.DB, bus events.EventBus) (*Server, error) {
	s := &Server{
		cfg:     cfg,
		db:      db,
		bus:     bus,
		modules: modulemanager.NewRegistry(),
		routes:  apiroutes.NewRegistry(),
	}

	s.modules.Register(catalogmodule.New(cfg, bus, s.routes))
	if err := s.modules.LoadAll(db); err != nil {
		return nil, fmt.Errorf("failed to load modules: %w", err)
	}
	logModuleStatus(s.modules)

	s.engine = s.setupRouter()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Routes returns the discovery registry.
func (s *Server) Routes() *apiroutes.Registry {
	return s.routes
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:           s.cfg.Server.Addr(),
		Handler:        s.engine,
		ReadTimeout:    s.cfg.Server.ReadTimeout,
		WriteTimeout:   s.cfg.Server.WriteTimeout,
		MaxHeaderBytes: s.cfg.Server.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return <-errCh
}

// logModuleStatus logs the loaded modules
func logModuleStatus(registry *modulemanager.ModuleRegistry) {
	modules := registry.ListModules()
	logger.Info("Module system initialized", "count", len(modules))
	for _, m := range modules {
		logger.Info("Module loaded", "id", m.ID(), "name", m.Name(), "core", m.Core())
	}
}
