// Package repository is the gorm-backed store of catalog entities.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mantonx/curator/internal/database"
	"gorm.io/gorm"
)

// ErrNotFound is returned when the requested entity does not exist.
var ErrNotFound = errors.New("record not found")

// ListOptions filters and pages list queries.
type ListOptions struct {
	Search string
	Limit  int
	Offset int
}

// Repository reads and writes catalog entities.
type Repository struct {
	db *gorm.DB
}

// New creates a repository on db.
func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func searchPattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}

func (r *Repository) page(q *gorm.DB, opts ListOptions) *gorm.DB {
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	return q
}

// CreateScene inserts a scene with its children and links.
func (r *Repository) CreateScene(ctx context.Context, scene *database.Scene) error {
	return r.db.WithContext(ctx).Create(scene).Error
}

// GetScene loads a scene with everything needed to render it.
func (r *Repository) GetScene(ctx context.Context, id string) (*database.Scene, error) {
	var scene database.Scene
	err := r.db.WithContext(ctx).
		Preload("Studio").
		Preload("Studio.URLs").
		Preload("Performers").
		Preload("Tags").
		Preload("Images").
		Preload("URLs").
		Preload("Fingerprints").
		First(&scene, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &scene, nil
}

// ListScenes returns a page of scenes, newest first, and the total match count.
func (r *Repository) ListScenes(ctx context.Context, opts ListOptions) ([]database.Scene, int64, error) {
	q := r.db.WithContext(ctx).Model(&database.Scene{})
	if opts.Search != "" {
		q = q.Where("LOWER(title) LIKE ?", searchPattern(opts.Search))
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var scenes []database.Scene
	err := r.page(q, opts).
		Preload("Studio").
		Preload("Performers").
		Preload("Images").
		Order("created_at DESC").
		Find(&scenes).Error
	if err != nil {
		return nil, 0, err
	}
	return scenes, total, nil
}

// UpdateSceneDuration sets or clears (nil) a scene's duration.
func (r *Repository) UpdateSceneDuration(ctx context.Context, id string, duration *int) error {
	res := r.db.WithContext(ctx).Model(&database.Scene{}).Where("id = ?", id).Update("duration", duration)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) CreatePerformer(ctx context.Context, performer *database.Performer) error {
	return r.db.WithContext(ctx).Create(performer).Error
}

func (r *Repository) GetPerformer(ctx context.Context, id string) (*database.Performer, error) {
	var performer database.Performer
	err := r.db.WithContext(ctx).
		Preload("BodyModifications").
		Preload("Images").
		Preload("URLs").
		First(&performer, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &performer, nil
}

func (r *Repository) ListPerformers(ctx context.Context, opts ListOptions) ([]database.Performer, int64, error) {
	q := r.db.WithContext(ctx).Model(&database.Performer{})
	if opts.Search != "" {
		q = q.Where("LOWER(name) LIKE ?", searchPattern(opts.Search))
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var performers []database.Performer
	err := r.page(q, opts).
		Preload("BodyModifications").
		Preload("Images").
		Preload("URLs").
		Order("name ASC").
		Find(&performers).Error
	if err != nil {
		return nil, 0, err
	}
	return performers, total, nil
}

// FindPerformers loads the performers with the given IDs. Missing IDs are
// reported as ErrNotFound.
func (r *Repository) FindPerformers(ctx context.Context, ids []string) ([]database.Performer, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var performers []database.Performer
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&performers).Error; err != nil {
		return nil, err
	}
	if len(performers) != len(unique(ids)) {
		return nil, fmt.Errorf("performers %v: %w", ids, ErrNotFound)
	}
	return performers, nil
}

func (r *Repository) CreateStudio(ctx context.Context, studio *database.Studio) error {
	return r.db.WithContext(ctx).Create(studio).Error
}

func (r *Repository) GetStudio(ctx context.Context, id string) (*database.Studio, error) {
	var studio database.Studio
	err := r.db.WithContext(ctx).
		Preload("Images").
		Preload("URLs").
		First(&studio, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &studio, nil
}

func (r *Repository) CreateTag(ctx context.Context, tag *database.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *Repository) GetTag(ctx context.Context, id string) (*database.Tag, error) {
	var tag database.Tag
	if err := r.db.WithContext(ctx).First(&tag, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &tag, nil
}

func (r *Repository) ListTags(ctx context.Context, opts ListOptions) ([]database.Tag, int64, error) {
	q := r.db.WithContext(ctx).Model(&database.Tag{})
	if opts.Search != "" {
		q = q.Where("LOWER(name) LIKE ?", searchPattern(opts.Search))
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tags []database.Tag
	if err := r.page(q, opts).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, 0, err
	}
	return tags, total, nil
}

// FindTags loads the tags with the given IDs. Missing IDs are reported as
// ErrNotFound.
func (r *Repository) FindTags(ctx context.Context, ids []string) ([]database.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []database.Tag
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(unique(ids)) {
		return nil, fmt.Errorf("tags %v: %w", ids, ErrNotFound)
	}
	return tags, nil
}

// OwnerExists reports whether an image or URL owner row exists.
func (r *Repository) OwnerExists(ctx context.Context, ownerType, id string) (bool, error) {
	switch ownerType {
	case database.OwnerScene, database.OwnerPerformer, database.OwnerStudio:
	default:
		return false, fmt.Errorf("unknown owner type %q", ownerType)
	}

	var count int64
	if err := r.db.WithContext(ctx).Table(ownerType).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddImage attaches an image to an owner. The owner must exist.
func (r *Repository) AddImage(ctx context.Context, ownerType, ownerID string, image *database.Image) error {
	exists, err := r.OwnerExists(ctx, ownerType, ownerID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	image.OwnerType = ownerType
	image.OwnerID = ownerID
	return r.db.WithContext(ctx).Create(image).Error
}

// ListImages returns an owner's images in insertion order.
func (r *Repository) ListImages(ctx context.Context, ownerType, ownerID string) ([]database.Image, error) {
	exists, err := r.OwnerExists(ctx, ownerType, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	var images []database.Image
	err = r.db.WithContext(ctx).
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&images).Error
	return images, err
}

func unique(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
