// Package service holds the catalog's business rules: request validation,
// duration parsing, image probing and ranking, and event publishing.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mantonx/curator/internal/config"
	"github.com/mantonx/curator/internal/database"
	apperrors "github.com/mantonx/curator/internal/errors"
	"github.com/mantonx/curator/internal/events"
	"github.com/mantonx/curator/internal/modules/catalogmodule/repository"
	"github.com/mantonx/curator/internal/transforms"
)

const eventSource = "catalog"

// URLInput is a typed link in a create request.
type URLInput struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// FingerprintInput is a fingerprint in a create request.
type FingerprintInput struct {
	Hash      string `json:"hash"`
	Algorithm string `json:"algorithm"`
	Duration  int    `json:"duration"`
}

// CreateSceneRequest is the body of POST /scenes. Duration is text in
// [H:]MM:SS form; empty means unknown.
type CreateSceneRequest struct {
	Title        string             `json:"title"`
	Details      string             `json:"details"`
	Date         string             `json:"date"`
	Duration     string             `json:"duration"`
	StudioID     string             `json:"studio_id"`
	PerformerIDs []string           `json:"performer_ids"`
	TagIDs       []string           `json:"tag_ids"`
	URLs         []URLInput         `json:"urls"`
	Fingerprints []FingerprintInput `json:"fingerprints"`
}

// BodyModificationInput is a tattoo or piercing in a create request.
type BodyModificationInput struct {
	Location    string `json:"location"`
	Description string `json:"description"`
}

// CreatePerformerRequest is the body of POST /performers.
type CreatePerformerRequest struct {
	Name            string                  `json:"name"`
	Disambiguation  string                  `json:"disambiguation"`
	Gender          string                  `json:"gender"`
	CareerStartYear *int                    `json:"career_start_year"`
	CareerEndYear   *int                    `json:"career_end_year"`
	BandSize        *int                    `json:"band_size"`
	CupSize         string                  `json:"cup_size"`
	Waist           *int                    `json:"waist"`
	Hip             *int                    `json:"hip"`
	Tattoos         []BodyModificationInput `json:"tattoos"`
	Piercings       []BodyModificationInput `json:"piercings"`
	URLs            []URLInput              `json:"urls"`
}

// CreateStudioRequest is the body of POST /studios.
type CreateStudioRequest struct {
	Name     string     `json:"name"`
	ParentID string     `json:"parent_id"`
	URLs     []URLInput `json:"urls"`
}

// CreateTagRequest is the body of POST /tags.
type CreateTagRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AddImageRequest attaches an image. When Data is set the dimensions are
// probed from it and Width/Height are ignored.
type AddImageRequest struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Data   []byte `json:"-"`
}

// Page is one page of a list result.
type Page[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// Service implements catalog operations on top of the repository.
type Service struct {
	repo *repository.Repository
	bus  events.EventBus
	log  hclog.Logger
	cfg  config.CatalogConfig
}

// New creates a catalog service. bus may be nil.
func New(repo *repository.Repository, bus events.EventBus, log hclog.Logger, cfg config.CatalogConfig) *Service {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Service{repo: repo, bus: bus, log: log, cfg: cfg}
}

// Config returns the catalog limits the service was built with.
func (s *Service) Config() config.CatalogConfig {
	return s.cfg
}

func (s *Service) publish(eventType events.EventType, target string, data map[string]interface{}) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(events.NewEvent(eventType, eventSource, target, data))
}

// storeError maps repository errors onto API errors.
func storeError(resource, id, operation string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFoundError(resource, id)
	}
	return apperrors.NewDatabaseError(operation, err)
}

// parseDurationText applies the request rule for durations: empty text means
// unknown, anything else must parse.
func parseDurationText(text string) (*int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	seconds, ok := transforms.ParseDuration(text)
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid duration %q, expected [H:]MM:SS", text), "duration")
	}
	return &seconds, nil
}

func toURLRows(in []URLInput) ([]database.URL, error) {
	rows := make([]database.URL, 0, len(in))
	for _, u := range in {
		if strings.TrimSpace(u.URL) == "" {
			return nil, apperrors.NewValidationError("url is required", "urls")
		}
		rows = append(rows, database.URL{URL: u.URL, Type: strings.ToUpper(u.Type)})
	}
	return rows, nil
}

// ClampPage applies the configured default and maximum page sizes.
func (s *Service) ClampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = s.cfg.DefaultPageSize
	}
	if s.cfg.MaxPageSize > 0 && limit > s.cfg.MaxPageSize {
		limit = s.cfg.MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// CreateScene validates and stores a new scene.
func (s *Service) CreateScene(ctx context.Context, req CreateSceneRequest) (*SceneCard, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title is required", "title")
	}
	duration, err := parseDurationText(req.Duration)
	if err != nil {
		return nil, err
	}
	urls, err := toURLRows(req.URLs)
	if err != nil {
		return nil, err
	}

	scene := &database.Scene{
		Title:    title,
		Details:  req.Details,
		Date:     req.Date,
		Duration: duration,
		URLs:     urls,
	}

	for _, fp := range req.Fingerprints {
		algo := database.FingerprintAlgorithm(strings.ToUpper(fp.Algorithm))
		if !algo.Valid() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown fingerprint algorithm %q", fp.Algorithm), "fingerprints")
		}
		if fp.Hash == "" {
			return nil, apperrors.NewValidationError("fingerprint hash is required", "fingerprints")
		}
		scene.Fingerprints = append(scene.Fingerprints, database.Fingerprint{Hash: fp.Hash, Algorithm: algo, Duration: fp.Duration})
	}

	if req.StudioID != "" {
		if _, err := s.repo.GetStudio(ctx, req.StudioID); err != nil {
			return nil, storeError("studio", req.StudioID, "get studio", err)
		}
		studioID := req.StudioID
		scene.StudioID = &studioID
	}

	performers, err := s.repo.FindPerformers(ctx, req.PerformerIDs)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewValidationError("unknown performer id", "performer_ids")
		}
		return nil, apperrors.NewDatabaseError("find performers", err)
	}
	scene.Performers = performers

	tags, err := s.repo.FindTags(ctx, req.TagIDs)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewValidationError("unknown tag id", "tag_ids")
		}
		return nil, apperrors.NewDatabaseError("find tags", err)
	}
	scene.Tags = tags

	if err := s.repo.CreateScene(ctx, scene); err != nil {
		return nil, apperrors.NewDatabaseError("create scene", err)
	}

	s.log.Info("scene created", "id", scene.ID, "title", scene.Title, "duration", transforms.FormatDuration(scene.Duration))
	s.publish(events.EventSceneCreated, scene.ID, map[string]interface{}{
		"title":    scene.Title,
		"duration": transforms.FormatDuration(scene.Duration),
	})

	return s.GetScene(ctx, scene.ID)
}

// GetScene returns a scene card.
func (s *Service) GetScene(ctx context.Context, id string) (*SceneCard, error) {
	scene, err := s.repo.GetScene(ctx, id)
	if err != nil {
		return nil, storeError("scene", id, "get scene", err)
	}
	card := NewSceneCard(scene)
	return &card, nil
}

// ListScenes returns a page of scene cards.
func (s *Service) ListScenes(ctx context.Context, search string, limit, offset int) (*Page[SceneCard], error) {
	limit, offset = s.ClampPage(limit, offset)
	scenes, total, err := s.repo.ListScenes(ctx, repository.ListOptions{Search: search, Limit: limit, Offset: offset})
	if err != nil {
		return nil, apperrors.NewDatabaseError("list scenes", err)
	}

	items := make([]SceneCard, len(scenes))
	for i := range scenes {
		items[i] = NewSceneCard(&scenes[i])
	}
	return &Page[SceneCard]{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

// UpdateSceneDuration sets a scene's duration from text. Empty text clears it.
func (s *Service) UpdateSceneDuration(ctx context.Context, id, text string) (*SceneCard, error) {
	duration, err := parseDurationText(text)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateSceneDuration(ctx, id, duration); err != nil {
		return nil, storeError("scene", id, "update scene duration", err)
	}

	formatted := transforms.FormatDuration(duration)
	s.log.Debug("scene duration updated", "id", id, "duration", formatted)
	s.publish(events.EventSceneUpdated, id, map[string]interface{}{"duration": formatted})

	return s.GetScene(ctx, id)
}

func toModificationRows(kind string, in []BodyModificationInput) ([]database.BodyModification, error) {
	rows := make([]database.BodyModification, 0, len(in))
	for _, m := range in {
		if strings.TrimSpace(m.Location) == "" {
			return nil, apperrors.NewValidationError(kind+" location is required", kind+"s")
		}
		rows = append(rows, database.BodyModification{Kind: kind, Location: m.Location, Description: m.Description})
	}
	return rows, nil
}

// CreatePerformer validates and stores a new performer.
func (s *Service) CreatePerformer(ctx context.Context, req CreatePerformerRequest) (*PerformerCard, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required", "name")
	}
	if req.CareerStartYear != nil && req.CareerEndYear != nil && *req.CareerEndYear < *req.CareerStartYear {
		return nil, apperrors.NewValidationError("career end year is before start year", "career_end_year")
	}

	tattoos, err := toModificationRows(database.ModificationTattoo, req.Tattoos)
	if err != nil {
		return nil, err
	}
	piercings, err := toModificationRows(database.ModificationPiercing, req.Piercings)
	if err != nil {
		return nil, err
	}
	urls, err := toURLRows(req.URLs)
	if err != nil {
		return nil, err
	}

	performer := &database.Performer{
		Name:              name,
		Disambiguation:    req.Disambiguation,
		Gender:            req.Gender,
		CareerStartYear:   req.CareerStartYear,
		CareerEndYear:     req.CareerEndYear,
		BandSize:          req.BandSize,
		CupSize:           strings.ToUpper(req.CupSize),
		Waist:             req.Waist,
		Hip:               req.Hip,
		BodyModifications: append(tattoos, piercings...),
		URLs:              urls,
	}
	if err := s.repo.CreatePerformer(ctx, performer); err != nil {
		return nil, apperrors.NewDatabaseError("create performer", err)
	}

	s.log.Info("performer created", "id", performer.ID, "name", performer.Name)
	s.publish(events.EventPerformerCreated, performer.ID, map[string]interface{}{"name": performer.Name})

	return s.GetPerformer(ctx, performer.ID)
}

// GetPerformer returns a performer card.
func (s *Service) GetPerformer(ctx context.Context, id string) (*PerformerCard, error) {
	performer, err := s.repo.GetPerformer(ctx, id)
	if err != nil {
		return nil, storeError("performer", id, "get performer", err)
	}
	card := NewPerformerCard(performer)
	return &card, nil
}

// ListPerformers returns a page of performer cards.
func (s *Service) ListPerformers(ctx context.Context, search string, limit, offset int) (*Page[PerformerCard], error) {
	limit, offset = s.ClampPage(limit, offset)
	performers, total, err := s.repo.ListPerformers(ctx, repository.ListOptions{Search: search, Limit: limit, Offset: offset})
	if err != nil {
		return nil, apperrors.NewDatabaseError("list performers", err)
	}

	items := make([]PerformerCard, len(performers))
	for i := range performers {
		items[i] = NewPerformerCard(&performers[i])
	}
	return &Page[PerformerCard]{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}

// CreateStudio validates and stores a new studio.
func (s *Service) CreateStudio(ctx context.Context, req CreateStudioRequest) (*StudioCard, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required", "name")
	}
	urls, err := toURLRows(req.URLs)
	if err != nil {
		return nil, err
	}

	studio := &database.Studio{Name: name, URLs: urls}
	if req.ParentID != "" {
		if _, err := s.repo.GetStudio(ctx, req.ParentID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.NewValidationError("unknown parent studio", "parent_id")
			}
			return nil, apperrors.NewDatabaseError("get studio", err)
		}
		parentID := req.ParentID
		studio.ParentID = &parentID
	}

	if err := s.repo.CreateStudio(ctx, studio); err != nil {
		return nil, apperrors.NewDatabaseError("create studio", err)
	}

	s.log.Info("studio created", "id", studio.ID, "name", studio.Name)
	s.publish(events.EventStudioCreated, studio.ID, map[string]interface{}{"name": studio.Name})

	return s.GetStudio(ctx, studio.ID)
}

// GetStudio returns a studio card.
func (s *Service) GetStudio(ctx context.Context, id string) (*StudioCard, error) {
	studio, err := s.repo.GetStudio(ctx, id)
	if err != nil {
		return nil, storeError("studio", id, "get studio", err)
	}
	card := NewStudioCard(studio)
	return &card, nil
}

// CreateTag stores a new tag.
func (s *Service) CreateTag(ctx context.Context, req CreateTagRequest) (*database.Tag, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required", "name")
	}

	tag := &database.Tag{Name: name, Description: req.Description}
	if err := s.repo.CreateTag(ctx, tag); err != nil {
		return nil, apperrors.NewDatabaseError("create tag", err)
	}

	s.publish(events.EventTagCreated, tag.ID, map[string]interface{}{"name": tag.Name})
	return tag, nil
}

// ListTags returns a page of tags ordered by name.
func (s *Service) ListTags(ctx context.Context, search string, limit, offset int) (*Page[database.Tag], error) {
	limit, offset = s.ClampPage(limit, offset)
	tags, total, err := s.repo.ListTags(ctx, repository.ListOptions{Search: search, Limit: limit, Offset: offset})
	if err != nil {
		return nil, apperrors.NewDatabaseError("list tags", err)
	}
	if tags == nil {
		tags = []database.Tag{}
	}
	return &Page[database.Tag]{Items: tags, Total: total, Limit: limit, Offset: offset}, nil
}

// AddImage attaches an image to a scene, performer or studio.
func (s *Service) AddImage(ctx context.Context, ownerType, ownerID string, req AddImageRequest) (*transforms.Image, error) {
	if strings.TrimSpace(req.URL) == "" {
		return nil, apperrors.NewValidationError("url is required", "url")
	}

	width, height := req.Width, req.Height
	if len(req.Data) > 0 {
		if s.cfg.MaxImageBytes > 0 && int64(len(req.Data)) > s.cfg.MaxImageBytes {
			return nil, apperrors.NewPayloadTooLargeError(s.cfg.MaxImageBytes)
		}
		info, err := ProbeImage(req.Data)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error(), "image")
		}
		width, height = info.Width, info.Height
	}
	if width <= 0 || height <= 0 {
		return nil, apperrors.NewValidationError("width and height must be positive", "dimensions")
	}

	image := &database.Image{URL: req.URL, Width: width, Height: height}
	if err := s.repo.AddImage(ctx, ownerType, ownerID, image); err != nil {
		return nil, storeError(ownerResource(ownerType), ownerID, "add image", err)
	}

	s.log.Debug("image added", "owner_type", ownerType, "owner_id", ownerID, "width", width, "height", height)
	s.publish(events.EventImageAdded, ownerID, map[string]interface{}{
		"owner_type": ownerType,
		"image_id":   image.ID,
		"width":      width,
		"height":     height,
	})

	return &transforms.Image{ID: image.ID, URL: image.URL, Width: image.Width, Height: image.Height}, nil
}

// ListImages returns an owner's images ranked for orientation. The best
// candidate comes first.
func (s *Service) ListImages(ctx context.Context, ownerType, ownerID string, orientation transforms.Orientation) ([]transforms.Image, error) {
	rows, err := s.repo.ListImages(ctx, ownerType, ownerID)
	if err != nil {
		return nil, storeError(ownerResource(ownerType), ownerID, "list images", err)
	}
	return transforms.RankImages(toImages(rows), orientation), nil
}

// DefaultOrientation is the orientation each owner type displays with.
func DefaultOrientation(ownerType string) transforms.Orientation {
	if ownerType == database.OwnerPerformer {
		return transforms.Portrait
	}
	return transforms.Landscape
}

func ownerResource(ownerType string) string {
	return strings.TrimSuffix(ownerType, "s")
}
