package api

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all catalog routes on the versioned API group.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, stream *Stream) {
	scenes := router.Group("/scenes")
	{
		scenes.GET("", handler.ListScenes)
		scenes.POST("", handler.CreateScene)
		scenes.GET("/:id", handler.GetScene)
		scenes.PUT("/:id/duration", handler.UpdateSceneDuration)
	}

	performers := router.Group("/performers")
	{
		performers.GET("", handler.ListPerformers)
		performers.POST("", handler.CreatePerformer)
		performers.GET("/:id", handler.GetPerformer)
	}

	studios := router.Group("/studios")
	{
		studios.POST("", handler.CreateStudio)
		studios.GET("/:id", handler.GetStudio)
	}

	tags := router.Group("/tags")
	{
		tags.GET("", handler.ListTags)
		tags.POST("", handler.CreateTag)
	}

	// Each owner gets its own image routes; a shared /:entity prefix would
	// clash with the static groups above.
	for _, owner := range imageOwners {
		router.POST("/"+owner+"/:id/images", handler.addImage(owner))
		router.GET("/"+owner+"/:id/images", handler.listImages(owner))
	}

	duration := router.Group("/duration")
	{
		duration.GET("/format", handler.FormatDuration)
		duration.GET("/parse", handler.ParseDuration)
	}

	if stream != nil {
		router.GET("/events/ws", stream.Handle)
	}
}
