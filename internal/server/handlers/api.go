package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/curator/internal/apiroutes"
)

// APIRootHandler serves the /api endpoint, listing available routes grouped
// by their first path segment after the version.
func APIRootHandler(routes *apiroutes.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		registered := routes.Get()

		endpoints := make(map[string]string)
		for _, route := range registered {
			segments := strings.Split(strings.TrimPrefix(route.Path, "/api/"), "/")
			key := segments[0]
			if key == "v1" && len(segments) > 1 {
				key = strings.Join(segments[:2], "/")
			}
			if key == "" || key == "/api" {
				continue
			}
			if _, exists := endpoints[key]; !exists {
				endpoints[key] = "/api/" + key
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"endpoints":         endpoints,
			"version":           "v1",
			"status":            "OK",
			"registered_routes": registered,
		})
	}
}
