// Package services is the registry modules use to expose their public API to
// each other without importing one another's internals.
package services

import (
	"context"

	"github.com/mantonx/curator/internal/config"
	"github.com/mantonx/curator/internal/database"
	"github.com/mantonx/curator/internal/modules/catalogmodule/service"
	"github.com/mantonx/curator/internal/transforms"
)

// CatalogServiceName is the registry key of the catalog service.
const CatalogServiceName = "catalog"

// CatalogService defines the interface for catalog operations
type CatalogService interface {
	Config() config.CatalogConfig

	// Scenes. Durations are [H:]MM:SS text; empty text means unknown.
	CreateScene(ctx context.Context, req service.CreateSceneRequest) (*service.SceneCard, error)
	GetScene(ctx context.Context, id string) (*service.SceneCard, error)
	ListScenes(ctx context.Context, search string, limit, offset int) (*service.Page[service.SceneCard], error)
	UpdateSceneDuration(ctx context.Context, id, text string) (*service.SceneCard, error)

	CreatePerformer(ctx context.Context, req service.CreatePerformerRequest) (*service.PerformerCard, error)
	GetPerformer(ctx context.Context, id string) (*service.PerformerCard, error)
	ListPerformers(ctx context.Context, search string, limit, offset int) (*service.Page[service.PerformerCard], error)

	CreateStudio(ctx context.Context, req service.CreateStudioRequest) (*service.StudioCard, error)
	GetStudio(ctx context.Context, id string) (*service.StudioCard, error)

	CreateTag(ctx context.Context, req service.CreateTagRequest) (*database.Tag, error)
	ListTags(ctx context.Context, search string, limit, offset int) (*service.Page[database.Tag], error)

	// Images are ranked best first for the requested orientation.
	AddImage(ctx context.Context, ownerType, ownerID string, req service.AddImageRequest) (*transforms.Image, error)
	ListImages(ctx context.Context, ownerType, ownerID string, orientation transforms.Orientation) ([]transforms.Image, error)
}

var _ CatalogService = (*service.Service)(nil)
