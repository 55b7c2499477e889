package service

import (
	"testing"

	"github.com/mantonx/curator/internal/database"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestNewSceneCard(t *testing.T) {
	scene := &database.Scene{
		ID:       "s1",
		Title:    "Opening Night",
		Duration: intPtr(3725),
		Studio:   &database.Studio{ID: "st1", Name: "Northwind"},
		Performers: []database.Performer{
			{ID: "p1", Name: "Jane Roe", Disambiguation: "II"},
		},
		Tags: []database.Tag{{ID: "t1", Name: "outdoor"}},
		Images: []database.Image{
			{ID: "i1", URL: "tall.jpg", Width: 600, Height: 900},
			{ID: "i2", URL: "wide.jpg", Width: 1280, Height: 720},
			{ID: "i3", URL: "wider.jpg", Width: 1920, Height: 1080},
		},
		URLs: []database.URL{
			{URL: "https://home.example", Type: "HOME"},
			{URL: "https://northwind.example/s1", Type: "STUDIO"},
		},
		Fingerprints: []database.Fingerprint{
			{Hash: "abc", Algorithm: database.FingerprintPHash, Duration: 65},
		},
		PendingEdits: 2,
	}

	card := NewSceneCard(scene)
	assert.Equal(t, "1:02:05", card.Duration)
	assert.Equal(t, 3725, *card.DurationSeconds)
	assert.Equal(t, "wider.jpg", card.Image)
	assert.Equal(t, "https://northwind.example/s1", card.StudioURL)
	assert.Equal(t, " (2 Pending)", card.Pending)
	assert.Equal(t, &StudioRef{ID: "st1", Name: "Northwind"}, card.Studio)
	assert.Equal(t, []PerformerRef{{ID: "p1", Name: "Jane Roe", Disambiguation: "II"}}, card.Performers)
	assert.Equal(t, []string{"outdoor"}, card.Tags)
	assert.Equal(t, []FingerprintView{{Hash: "abc", Algorithm: "PHASH", Duration: "01:05", DurationSeconds: 65}}, card.Fingerprints)
}

func TestNewSceneCardEmpty(t *testing.T) {
	card := NewSceneCard(&database.Scene{ID: "s1", Title: "Bare"})
	assert.Equal(t, "", card.Duration)
	assert.Nil(t, card.DurationSeconds)
	assert.Equal(t, "", card.Image)
	assert.Nil(t, card.Studio)
	assert.Empty(t, card.Pending)
	assert.NotNil(t, card.Performers)
	assert.NotNil(t, card.Fingerprints)
}

func TestNewPerformerCard(t *testing.T) {
	p := &database.Performer{
		ID:              "p1",
		Name:            "Jane Roe",
		CareerStartYear: intPtr(2010),
		BandSize:        intPtr(34),
		CupSize:         "C",
		Waist:           intPtr(24),
		Hip:             intPtr(36),
		BodyModifications: []database.BodyModification{
			{Kind: database.ModificationTattoo, Location: "Left arm", Description: "rose"},
			{Kind: database.ModificationTattoo, Location: "Ankle"},
			{Kind: database.ModificationPiercing, Location: "Navel"},
		},
		Images: []database.Image{
			{URL: "wide.jpg", Width: 1920, Height: 1080},
			{URL: "tall.jpg", Width: 600, Height: 900},
		},
		URLs: []database.URL{{URL: "https://jane.example", Type: "HOME"}},
	}

	card := NewPerformerCard(p)
	assert.Equal(t, "tall.jpg", card.Image)
	assert.Equal(t, "Active 2010–", card.Career)
	assert.Equal(t, "34C-24-36", card.Measurements)
	assert.Equal(t, "34C", card.BraSize)
	assert.Equal(t, "Left arm (rose), Ankle", card.Tattoos)
	assert.Equal(t, "Navel", card.Piercings)
	assert.Equal(t, "https://jane.example", card.HomeURL)
	assert.Empty(t, card.Pending)
}

func TestNewStudioCard(t *testing.T) {
	parent := "st0"
	card := NewStudioCard(&database.Studio{
		ID:       "st1",
		Name:     "Northwind",
		ParentID: &parent,
		Images: []database.Image{
			{URL: "square.png", Width: 500, Height: 500},
			{URL: "logo.png", Width: 400, Height: 100},
		},
	})
	assert.Equal(t, "logo.png", card.Image)
	assert.Equal(t, &parent, card.ParentID)
	assert.Empty(t, card.HomeURL)
}
