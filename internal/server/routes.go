package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/curator/internal/logger"
	"github.com/mantonx/curator/internal/middleware"
	"github.com/mantonx/curator/internal/server/handlers"
)

// setupRouter configures middleware and routes
func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	httpLog := logger.Named("http")
	if s.cfg.Server.RequestLogging {
		r.Use(middleware.RequestLogger(httpLog))
	}
	r.Use(middleware.ErrorLogger(httpLog))
	if s.cfg.Server.EnableCORS {
		r.Use(middleware.CORS(s.cfg.Server.AllowedOrigins))
	}

	api := r.Group("/api")
	{
		s.setupHealthRoutes(api)

		v1 := api.Group("/v1")
		s.modules.RegisterRoutes(v1)
	}

	r.GET("/api", handlers.APIRootHandler(s.routes))
	s.routes.Register("/api", http.MethodGet, "Lists all available API endpoints.")

	return r
}

// setupHealthRoutes configures health check and status endpoints
func (s *Server) setupHealthRoutes(api *gin.RouterGroup) {
	health := handlers.NewHealthHandler(s.db, s.modules)

	api.GET("/health", health.HandleHealthCheck)
	s.routes.Register(api.BasePath()+"/health", http.MethodGet, "System health check with module and host status.")

	api.GET("/db-status", health.HandleDBStatus)
	s.routes.Register(api.BasePath()+"/db-status", http.MethodGet, "Database connection status and pool statistics.")
}
