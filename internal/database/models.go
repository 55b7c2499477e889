package database

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/mantonx/curator/internal/utils"
	"gorm.io/gorm"
)

// Owner types for polymorphic images and URLs.
const (
	OwnerScene     = "scenes"
	OwnerPerformer = "performers"
	OwnerStudio    = "studios"
)

// FingerprintAlgorithm enum for fingerprints.algorithm
type FingerprintAlgorithm string

const (
	FingerprintMD5    FingerprintAlgorithm = "MD5"
	FingerprintOSHash FingerprintAlgorithm = "OSHASH"
	FingerprintPHash  FingerprintAlgorithm = "PHASH"
)

func (a FingerprintAlgorithm) Value() (driver.Value, error) {
	return string(a), nil
}

func (a *FingerprintAlgorithm) Scan(value interface{}) error {
	if value == nil {
		*a = ""
		return nil
	}
	switch s := value.(type) {
	case string:
		*a = FingerprintAlgorithm(s)
	case []byte:
		*a = FingerprintAlgorithm(s)
	default:
		return fmt.Errorf("cannot scan %T into FingerprintAlgorithm", value)
	}
	return nil
}

// Valid reports whether a is a known algorithm.
func (a FingerprintAlgorithm) Valid() bool {
	switch a {
	case FingerprintMD5, FingerprintOSHash, FingerprintPHash:
		return true
	}
	return false
}

// Image is a stored image of a scene, performer or studio. Order is never
// stored; it is computed per request for the wanted orientation.
type Image struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	OwnerID   string    `gorm:"type:varchar(36);not null;index:idx_image_owner" json:"-"`
	OwnerType string    `gorm:"type:varchar(16);not null;index:idx_image_owner" json:"-"`
	URL       string    `gorm:"not null" json:"url"`
	Width     int       `gorm:"not null" json:"width"`
	Height    int       `gorm:"not null" json:"height"`
	CreatedAt time.Time `json:"created_at"`
}

// URL is a typed external link (HOME, STUDIO, PHOTO, ...)
type URL struct {
	ID        uint32 `gorm:"primaryKey" json:"-"`
	OwnerID   string `gorm:"type:varchar(36);not null;index:idx_url_owner" json:"-"`
	OwnerType string `gorm:"type:varchar(16);not null;index:idx_url_owner" json:"-"`
	URL       string `gorm:"not null" json:"url"`
	Type      string `gorm:"not null" json:"type"`
}

type Studio struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	ParentID  *string   `gorm:"type:varchar(36);index" json:"parent_id,omitempty"`
	Images    []Image   `gorm:"polymorphic:Owner;polymorphicValue:studios" json:"images"`
	URLs      []URL     `gorm:"polymorphic:Owner;polymorphicValue:studios" json:"urls"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BodyModification kinds
const (
	ModificationTattoo   = "tattoo"
	ModificationPiercing = "piercing"
)

type BodyModification struct {
	ID          uint32 `gorm:"primaryKey" json:"-"`
	PerformerID string `gorm:"type:varchar(36);not null;index" json:"-"`
	Kind        string `gorm:"type:varchar(16);not null" json:"kind"`
	Location    string `gorm:"not null" json:"location"`
	Description string `json:"description,omitempty"`
}

type Performer struct {
	ID                string             `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name              string             `gorm:"not null;index" json:"name"`
	Disambiguation    string             `json:"disambiguation,omitempty"`
	Gender            string             `json:"gender,omitempty"`
	CareerStartYear   *int               `json:"career_start_year,omitempty"`
	CareerEndYear     *int               `json:"career_end_year,omitempty"`
	BandSize          *int               `json:"band_size,omitempty"`
	CupSize           string             `json:"cup_size,omitempty"`
	Waist             *int               `json:"waist,omitempty"`
	Hip               *int               `json:"hip,omitempty"`
	BodyModifications []BodyModification `gorm:"constraint:OnDelete:CASCADE" json:"body_modifications"`
	Images            []Image            `gorm:"polymorphic:Owner;polymorphicValue:performers" json:"images"`
	URLs              []URL              `gorm:"polymorphic:Owner;polymorphicValue:performers" json:"urls"`
	PendingEdits      int                `gorm:"default:0" json:"pending_edits"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// Modifications returns the body modifications of one kind.
func (p *Performer) Modifications(kind string) []BodyModification {
	var out []BodyModification
	for _, m := range p.BodyModifications {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}

type Tag struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string    `gorm:"not null;uniqueIndex" json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Fingerprint is a hash of one media file of a scene, with that file's duration.
type Fingerprint struct {
	ID        uint32               `gorm:"primaryKey" json:"-"`
	SceneID   string               `gorm:"type:varchar(36);not null;index" json:"-"`
	Hash      string               `gorm:"not null;index" json:"hash"`
	Algorithm FingerprintAlgorithm `gorm:"type:varchar(8);not null" json:"algorithm"`
	Duration  int                  `json:"duration"` // In seconds
}

type Scene struct {
	ID           string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title        string        `gorm:"not null;index" json:"title"`
	Details      string        `json:"details,omitempty"`
	Date         string        `gorm:"type:varchar(10)" json:"date,omitempty"` // YYYY-MM-DD
	Duration     *int          `json:"duration,omitempty"`                     // In seconds, nil when unknown
	StudioID     *string       `gorm:"type:varchar(36);index" json:"studio_id,omitempty"`
	Studio       *Studio       `json:"studio,omitempty"`
	Performers   []Performer   `gorm:"many2many:scene_performers" json:"performers"`
	Tags         []Tag         `gorm:"many2many:scene_tags" json:"tags"`
	Images       []Image       `gorm:"polymorphic:Owner;polymorphicValue:scenes" json:"images"`
	URLs         []URL         `gorm:"polymorphic:Owner;polymorphicValue:scenes" json:"urls"`
	Fingerprints []Fingerprint `gorm:"constraint:OnDelete:CASCADE" json:"fingerprints"`
	PendingEdits int           `gorm:"default:0" json:"pending_edits"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// AllModels lists every table for AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&Studio{},
		&Performer{},
		&BodyModification{},
		&Tag{},
		&Scene{},
		&Fingerprint{},
		&Image{},
		&URL{},
	}
}

func (s *Scene) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = utils.GenerateUUID()
	}
	return nil
}

func (p *Performer) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = utils.GenerateUUID()
	}
	return nil
}

func (s *Studio) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = utils.GenerateUUID()
	}
	return nil
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = utils.GenerateUUID()
	}
	return nil
}

func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = utils.GenerateUUID()
	}
	return nil
}
