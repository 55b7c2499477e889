// Package api exposes the catalog over HTTP.
package api

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/curator/internal/database"
	apperrors "github.com/mantonx/curator/internal/errors"
	"github.com/mantonx/curator/internal/modules/catalogmodule/service"
	"github.com/mantonx/curator/internal/services"
	"github.com/mantonx/curator/internal/transforms"
)

// Handler provides HTTP handlers for catalog operations
type Handler struct {
	service services.CatalogService
}

// NewHandler creates a new API handler
func NewHandler(svc services.CatalogService) *Handler {
	return &Handler{service: svc}
}

// pageParams reads limit and offset. Malformed values fall back to defaults.
func pageParams(c *gin.Context) (limit, offset int) {
	if l, err := strconv.Atoi(c.Query("limit")); err == nil {
		limit = l
	}
	if o, err := strconv.Atoi(c.Query("offset")); err == nil {
		offset = o
	}
	return limit, offset
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		apperrors.HandleValidationError(c, "Invalid request body: "+err.Error(), "body")
		return false
	}
	return true
}

// ListScenes handles GET /scenes
func (h *Handler) ListScenes(c *gin.Context) {
	limit, offset := pageParams(c)
	page, err := h.service.ListScenes(c.Request.Context(), c.Query("search"), limit, offset)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetScene handles GET /scenes/:id
func (h *Handler) GetScene(c *gin.Context) {
	card, err := h.service.GetScene(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// CreateScene handles POST /scenes
//
// Request body:
//
//	{
//	  "title": "Opening Night",
//	  "duration": "1:02:05",
//	  "studio_id": "...",
//	  "performer_ids": ["..."]
//	}
func (h *Handler) CreateScene(c *gin.Context) {
	var req service.CreateSceneRequest
	if !bindJSON(c, &req) {
		return
	}
	card, err := h.service.CreateScene(c.Request.Context(), req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, card)
}

// UpdateSceneDuration handles PUT /scenes/:id/duration with {"duration": "MM:SS"}.
// An empty duration clears it.
func (h *Handler) UpdateSceneDuration(c *gin.Context) {
	var req struct {
		Duration string `json:"duration"`
	}
	if !bindJSON(c, &req) {
		return
	}
	card, err := h.service.UpdateSceneDuration(c.Request.Context(), c.Param("id"), req.Duration)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

func (h *Handler) ListPerformers(c *gin.Context) {
	limit, offset := pageParams(c)
	page, err := h.service.ListPerformers(c.Request.Context(), c.Query("search"), limit, offset)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) GetPerformer(c *gin.Context) {
	card, err := h.service.GetPerformer(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

func (h *Handler) CreatePerformer(c *gin.Context) {
	var req service.CreatePerformerRequest
	if !bindJSON(c, &req) {
		return
	}
	card, err := h.service.CreatePerformer(c.Request.Context(), req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, card)
}

func (h *Handler) GetStudio(c *gin.Context) {
	card, err := h.service.GetStudio(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

func (h *Handler) CreateStudio(c *gin.Context) {
	var req service.CreateStudioRequest
	if !bindJSON(c, &req) {
		return
	}
	card, err := h.service.CreateStudio(c.Request.Context(), req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, card)
}

func (h *Handler) ListTags(c *gin.Context) {
	limit, offset := pageParams(c)
	page, err := h.service.ListTags(c.Request.Context(), c.Query("search"), limit, offset)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) CreateTag(c *gin.Context) {
	var req service.CreateTagRequest
	if !bindJSON(c, &req) {
		return
	}
	tag, err := h.service.CreateTag(c.Request.Context(), req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

// addImage returns a handler for POST /{owner}/:id/images. A JSON body
// carries url, width and height. Any other body is the image itself; its
// dimensions are probed and the url comes from the ?url= query parameter.
func (h *Handler) addImage(ownerType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.AddImageRequest

		if strings.HasPrefix(c.ContentType(), "application/json") {
			if !bindJSON(c, &req) {
				return
			}
		} else {
			// A non-positive limit means uploads are not capped.
			var body io.Reader = c.Request.Body
			limit := h.service.Config().MaxImageBytes
			if limit > 0 {
				body = io.LimitReader(c.Request.Body, limit+1)
			}
			data, err := io.ReadAll(body)
			if err != nil {
				apperrors.HandleValidationError(c, "Failed to read image body", "image")
				return
			}
			if limit > 0 && int64(len(data)) > limit {
				apperrors.NewPayloadTooLargeError(limit).ToGinResponse(c)
				return
			}
			req.URL = c.Query("url")
			req.Data = data
		}

		image, err := h.service.AddImage(c.Request.Context(), ownerType, c.Param("id"), req)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, image)
	}
}

// listImages returns a handler for GET /{owner}/:id/images. The
// orientation query parameter overrides the owner's default.
func (h *Handler) listImages(ownerType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		orientation := service.DefaultOrientation(ownerType)
		if raw := c.Query("orientation"); raw != "" {
			o, err := transforms.ParseOrientation(raw)
			if err != nil {
				apperrors.HandleValidationError(c, err.Error(), "orientation")
				return
			}
			orientation = o
		}

		images, err := h.service.ListImages(c.Request.Context(), ownerType, c.Param("id"), orientation)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		best := ""
		if len(images) > 0 {
			best = images[0].URL
		}
		c.JSON(http.StatusOK, gin.H{
			"orientation": orientation,
			"best":        best,
			"images":      images,
		})
	}
}

// FormatDuration handles GET /duration/format?seconds=N
func (h *Handler) FormatDuration(c *gin.Context) {
	seconds, err := strconv.Atoi(c.Query("seconds"))
	if err != nil {
		apperrors.HandleValidationError(c, "seconds must be an integer", "seconds")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"seconds":  seconds,
		"duration": transforms.FormatSeconds(seconds),
	})
}

// ParseDuration handles GET /duration/parse?text=H:MM:SS. Unparseable text
// is reported with valid=false rather than as an error.
func (h *Handler) ParseDuration(c *gin.Context) {
	text := c.Query("text")
	seconds, ok := transforms.ParseDuration(text)
	c.JSON(http.StatusOK, gin.H{
		"text":    text,
		"seconds": seconds,
		"valid":   ok,
	})
}

var imageOwners = []string{database.OwnerScene, database.OwnerPerformer, database.OwnerStudio}
