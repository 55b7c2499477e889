// Package handlers contains HTTP request handlers organized by functionality.
package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/curator/internal/modules/modulemanager"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"gorm.io/gorm"
)

// ModuleHealth reports the health of loaded modules.
type ModuleHealth interface {
	HealthCheck(ctx context.Context) map[string]modulemanager.HealthStatus
}

// HealthHandler serves the health and database status endpoints.
type HealthHandler struct {
	db      *gorm.DB
	modules ModuleHealth
	started time.Time
}

func NewHealthHandler(db *gorm.DB, modules ModuleHealth) *HealthHandler {
	return &HealthHandler{db: db, modules: modules, started: time.Now()}
}

// HandleHealthCheck returns service, module and host status. The response is
// 503 when any module is unhealthy.
func (h *HealthHandler) HandleHealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	code := http.StatusOK

	var modules map[string]modulemanager.HealthStatus
	if h.modules != nil {
		modules = h.modules.HealthCheck(ctx)
		for _, m := range modules {
			if m.Status == modulemanager.HealthStateUnhealthy {
				status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}
	}

	c.JSON(code, gin.H{
		"status":  status,
		"service": "curator",
		"uptime":  time.Since(h.started).Round(time.Second).String(),
		"modules": modules,
		"host":    hostStats(ctx),
	})
}

// hostStats gathers memory and CPU figures. Fields that cannot be read on
// this platform are left out.
func hostStats(ctx context.Context) gin.H {
	stats := gin.H{
		"goroutines": runtime.NumGoroutine(),
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		stats["memory_total"] = vm.Total
		stats["memory_used"] = vm.Used
		stats["memory_used_percent"] = vm.UsedPercent
	}
	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		stats["cpu_count"] = n
	}
	return stats
}

// HandleDBStatus checks and returns the database connection status
func (h *HealthHandler) HandleDBStatus(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"error":  "database not initialized",
		})
		return
	}

	sqlDB, err := h.db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Failed to get database instance: " + err.Error(),
		})
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"error":  "Database ping failed: " + err.Error(),
		})
		return
	}

	stats := sqlDB.Stats()
	c.JSON(http.StatusOK, gin.H{
		"status":   "connected",
		"database": h.db.Dialector.Name(),
		"connection_pool": gin.H{
			"open_connections":     stats.OpenConnections,
			"max_open_connections": stats.MaxOpenConnections,
			"in_use":               stats.InUse,
			"idle":                 stats.Idle,
			"wait_count":           stats.WaitCount,
		},
	})
}
