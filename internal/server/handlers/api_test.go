package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/curator/internal/apiroutes"
	"github.com/mantonx/curator/internal/modules/modulemanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModules map[string]modulemanager.HealthStatus

func (f fakeModules) HealthCheck(context.Context) map[string]modulemanager.HealthStatus {
	return f
}

func TestAPIRootGroupsRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	routes := apiroutes.NewRegistry()
	routes.Register("/api/v1/scenes", http.MethodGet, "List scenes.")
	routes.Register("/api/v1/scenes/:id", http.MethodGet, "Get scene.")
	routes.Register("/api/health", http.MethodGet, "Health.")
	routes.Register("/api", http.MethodGet, "Root.")

	r := gin.New()
	r.GET("/api", APIRootHandler(routes))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Endpoints        map[string]string    `json:"endpoints"`
		RegisteredRoutes []apiroutes.APIRoute `json:"registered_routes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"v1/scenes": "/api/v1/scenes", "health": "/api/health"}, body.Endpoints)
	assert.Len(t, body.RegisteredRoutes, 4)
}

func TestHealthDegradedWhenModuleUnhealthy(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewHealthHandler(nil, fakeModules{
		"system.catalog": {Status: modulemanager.HealthStateUnhealthy, Message: errors.New("ping failed").Error()},
	})
	r := gin.New()
	r.GET("/api/health", h.HandleHealthCheck)
	r.GET("/api/db-status", h.HandleDBStatus)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"degraded"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/db-status", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
