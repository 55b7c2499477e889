// Package catalogmodule serves the scene, performer, studio and tag catalog.
package catalogmodule

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/curator/internal/apiroutes"
	"github.com/mantonx/curator/internal/base"
	"github.com/mantonx/curator/internal/config"
	"github.com/mantonx/curator/internal/database"
	"github.com/mantonx/curator/internal/events"
	"github.com/mantonx/curator/internal/logger"
	"github.com/mantonx/curator/internal/modules/catalogmodule/api"
	"github.com/mantonx/curator/internal/modules/catalogmodule/repository"
	"github.com/mantonx/curator/internal/modules/catalogmodule/service"
	"github.com/mantonx/curator/internal/services"
	"gorm.io/gorm"
)

const (
	// ModuleID is the unique identifier for the catalog module
	ModuleID = "system.catalog"

	// ModuleName is the display name for the catalog module
	ModuleName = "Catalog"

	// ModuleVersion is the version of the catalog module
	ModuleVersion = "1.0.0"
)

// Module wires the catalog repository, service and HTTP API together.
type Module struct {
	*base.BaseModule

	cfg     config.CatalogConfig
	origins []string
	routes  *apiroutes.Registry
	service *service.Service
}

// New creates the catalog module. routes may be nil.
func New(cfg *config.Config, bus events.EventBus, routes *apiroutes.Registry) *Module {
	m := &Module{
		BaseModule: base.NewBaseModule(ModuleID, ModuleName, ModuleVersion, true),
		cfg:        cfg.Catalog,
		origins:    cfg.Server.AllowedOrigins,
		routes:     routes,
	}
	m.SetEventBus(bus)
	return m
}

// Migrate creates the catalog tables.
func (m *Module) Migrate(db *gorm.DB) error {
	logger.Info("Migrating catalog database schema")
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate catalog models: %w", err)
	}
	m.SetDB(db)
	return nil
}

// Init builds the service layer.
func (m *Module) Init() error {
	db := m.GetDB()
	if db == nil {
		db = database.GetDB()
		if db == nil {
			return base.ErrDatabaseConnection
		}
		m.SetDB(db)
	}

	bus := m.GetEventBus()
	if bus == nil {
		bus = events.GetGlobalEventBus()
		m.SetEventBus(bus)
	}

	m.service = service.New(repository.New(db), bus, logger.Named("catalog"), m.cfg)
	services.Global().Register(services.CatalogServiceName, m.service)
	m.SetInitialized(true)

	logger.Info("Catalog module initialized", "default_page_size", m.cfg.DefaultPageSize, "max_page_size", m.cfg.MaxPageSize)
	return nil
}

// Service returns the catalog service. It is nil until Init has run.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the catalog API on the versioned group.
func (m *Module) RegisterRoutes(router *gin.RouterGroup) {
	if m.service == nil {
		logger.Warn("Catalog module routes skipped, module not initialized")
		return
	}

	catalog, err := services.GetCatalogService()
	if err != nil {
		logger.Error("Catalog module routes skipped, service not registered", "error", err)
		return
	}

	var stream *api.Stream
	if bus := m.GetEventBus(); bus != nil {
		stream = api.NewStream(bus, m.origins, logger.Named("catalog.stream"))
	}
	api.RegisterRoutes(router, api.NewHandler(catalog), stream)

	if m.routes != nil {
		m.describeRoutes(router.BasePath(), stream != nil)
	}
	logger.Info("Catalog module routes registered")
}

func (m *Module) describeRoutes(prefix string, withStream bool) {
	add := func(method, path, description string) {
		m.routes.Register(prefix+path, method, description)
	}

	add(http.MethodGet, "/scenes", "List scenes as display cards. Query: search, limit, offset.")
	add(http.MethodPost, "/scenes", "Create a scene. Duration is given as [H:]MM:SS text.")
	add(http.MethodGet, "/scenes/:id", "Get a scene card with formatted duration and best landscape image.")
	add(http.MethodPut, "/scenes/:id/duration", "Set or clear a scene's duration from [H:]MM:SS text.")
	add(http.MethodGet, "/performers", "List performers as display cards.")
	add(http.MethodPost, "/performers", "Create a performer.")
	add(http.MethodGet, "/performers/:id", "Get a performer card with best portrait image.")
	add(http.MethodPost, "/studios", "Create a studio.")
	add(http.MethodGet, "/studios/:id", "Get a studio card.")
	add(http.MethodGet, "/tags", "List tags.")
	add(http.MethodPost, "/tags", "Create a tag.")
	for _, owner := range []string{database.OwnerScene, database.OwnerPerformer, database.OwnerStudio} {
		add(http.MethodPost, "/"+owner+"/:id/images", "Attach an image. JSON with dimensions, or a raw image body with ?url=.")
		add(http.MethodGet, "/"+owner+"/:id/images", "List images ranked best first. Query: orientation.")
	}
	add(http.MethodGet, "/duration/format", "Format seconds as [H:]MM:SS. Query: seconds.")
	add(http.MethodGet, "/duration/parse", "Parse [H:]MM:SS text into seconds. Query: text.")
	if withStream {
		add(http.MethodGet, "/events/ws", "Websocket stream of catalog events. Query: types.")
	}
}
