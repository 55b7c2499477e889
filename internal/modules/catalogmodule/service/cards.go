package service

import (
	"github.com/mantonx/curator/internal/database"
	"github.com/mantonx/curator/internal/transforms"
)

// URL types looked up when rendering cards.
const (
	URLTypeHome   = "HOME"
	URLTypeStudio = "STUDIO"
)

// StudioRef is the short form of a studio shown on other cards.
type StudioRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PerformerRef is the short form of a performer shown on scene cards.
type PerformerRef struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Disambiguation string `json:"disambiguation,omitempty"`
}

// FingerprintView is a fingerprint with its duration rendered.
type FingerprintView struct {
	Hash            string `json:"hash"`
	Algorithm       string `json:"algorithm"`
	Duration        string `json:"duration"`
	DurationSeconds int    `json:"duration_seconds"`
}

// SceneCard is a scene shaped for display.
type SceneCard struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Pending         string            `json:"pending,omitempty"`
	Date            string            `json:"date,omitempty"`
	Details         string            `json:"details,omitempty"`
	Duration        string            `json:"duration"`
	DurationSeconds *int              `json:"duration_seconds,omitempty"`
	Image           string            `json:"image"`
	Studio          *StudioRef        `json:"studio,omitempty"`
	StudioURL       string            `json:"studio_url,omitempty"`
	Performers      []PerformerRef    `json:"performers"`
	Tags            []string          `json:"tags"`
	Fingerprints    []FingerprintView `json:"fingerprints"`
}

// PerformerCard is a performer shaped for display.
type PerformerCard struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Disambiguation string `json:"disambiguation,omitempty"`
	Gender         string `json:"gender,omitempty"`
	Pending        string `json:"pending,omitempty"`
	Image          string `json:"image"`
	Career         string `json:"career,omitempty"`
	Measurements   string `json:"measurements,omitempty"`
	BraSize        string `json:"bra_size,omitempty"`
	Tattoos        string `json:"tattoos,omitempty"`
	Piercings      string `json:"piercings,omitempty"`
	HomeURL        string `json:"home_url,omitempty"`
}

// StudioCard is a studio shaped for display.
type StudioCard struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id,omitempty"`
	Image    string  `json:"image"`
	HomeURL  string  `json:"home_url,omitempty"`
}

func toImages(images []database.Image) []transforms.Image {
	out := make([]transforms.Image, len(images))
	for i, img := range images {
		out[i] = transforms.Image{ID: img.ID, URL: img.URL, Width: img.Width, Height: img.Height}
	}
	return out
}

func toURLs(urls []database.URL) []transforms.URL {
	out := make([]transforms.URL, len(urls))
	for i, u := range urls {
		out[i] = transforms.URL{URL: u.URL, Type: u.Type}
	}
	return out
}

func toModifications(mods []database.BodyModification) []transforms.BodyModification {
	out := make([]transforms.BodyModification, len(mods))
	for i, m := range mods {
		out[i] = transforms.BodyModification{Location: m.Location, Description: m.Description}
	}
	return out
}

// NewSceneCard renders a scene. Scenes use the best landscape image.
func NewSceneCard(scene *database.Scene) SceneCard {
	card := SceneCard{
		ID:              scene.ID,
		Title:           scene.Title,
		Pending:         transforms.FormatPendingEdits(scene.PendingEdits),
		Date:            scene.Date,
		Details:         scene.Details,
		Duration:        transforms.FormatDuration(scene.Duration),
		DurationSeconds: scene.Duration,
		Image:           transforms.PickImage(toImages(scene.Images), transforms.Landscape),
		StudioURL:       transforms.URLByType(toURLs(scene.URLs), URLTypeStudio),
		Performers:      make([]PerformerRef, 0, len(scene.Performers)),
		Tags:            make([]string, 0, len(scene.Tags)),
		Fingerprints:    make([]FingerprintView, 0, len(scene.Fingerprints)),
	}

	if scene.Studio != nil {
		card.Studio = &StudioRef{ID: scene.Studio.ID, Name: scene.Studio.Name}
	}
	for _, p := range scene.Performers {
		card.Performers = append(card.Performers, PerformerRef{ID: p.ID, Name: p.Name, Disambiguation: p.Disambiguation})
	}
	for _, t := range scene.Tags {
		card.Tags = append(card.Tags, t.Name)
	}
	for _, fp := range scene.Fingerprints {
		card.Fingerprints = append(card.Fingerprints, FingerprintView{
			Hash:            fp.Hash,
			Algorithm:       string(fp.Algorithm),
			Duration:        transforms.FormatSeconds(fp.Duration),
			DurationSeconds: fp.Duration,
		})
	}
	return card
}

// NewPerformerCard renders a performer. Performers use the best portrait image.
func NewPerformerCard(p *database.Performer) PerformerCard {
	measurements := transforms.Measurements{
		BandSize: p.BandSize,
		CupSize:  p.CupSize,
		Waist:    p.Waist,
		Hip:      p.Hip,
	}
	return PerformerCard{
		ID:             p.ID,
		Name:           p.Name,
		Disambiguation: p.Disambiguation,
		Gender:         p.Gender,
		Pending:        transforms.FormatPendingEdits(p.PendingEdits),
		Image:          transforms.PickImage(toImages(p.Images), transforms.Portrait),
		Career:         transforms.FormatCareer(p.CareerStartYear, p.CareerEndYear),
		Measurements:   transforms.FormatMeasurements(measurements),
		BraSize:        transforms.BraSize(measurements),
		Tattoos:        transforms.FormatBodyModifications(toModifications(p.Modifications(database.ModificationTattoo))),
		Piercings:      transforms.FormatBodyModifications(toModifications(p.Modifications(database.ModificationPiercing))),
		HomeURL:        transforms.URLByType(toURLs(p.URLs), URLTypeHome),
	}
}

// NewStudioCard renders a studio. Studio logos use the best landscape image.
func NewStudioCard(s *database.Studio) StudioCard {
	return StudioCard{
		ID:       s.ID,
		Name:     s.Name,
		ParentID: s.ParentID,
		Image:    transforms.PickImage(toImages(s.Images), transforms.Landscape),
		HomeURL:  transforms.URLByType(toURLs(s.URLs), URLTypeHome),
	}
}
