package database

import (
	"path/filepath"
	"testing"

	"github.com/mantonx/curator/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteConfig(t *testing.T) config.DatabaseConfig {
	dir := t.TempDir()
	return config.DatabaseConfig{
		Type:         "sqlite",
		DataDir:      dir,
		DatabasePath: filepath.Join(dir, "curator.db"),
	}
}

func TestInitializeSQLite(t *testing.T) {
	conn, err := Initialize(sqliteConfig(t))
	require.NoError(t, err)
	assert.Same(t, conn, GetDB())

	for _, model := range AllModels() {
		assert.True(t, conn.Migrator().HasTable(model), "missing table for %T", model)
	}
}

func TestOpenRejectsUnknownType(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Type: "oracle"})
	assert.ErrorContains(t, err, "unsupported database type")
}

func TestOpenSQLiteRequiresPath(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Type: "sqlite"})
	assert.Error(t, err)
}

func TestSceneAssociationsPersist(t *testing.T) {
	conn, err := Initialize(sqliteConfig(t))
	require.NoError(t, err)

	duration := 3725
	scene := Scene{
		Title:    "Opening Night",
		Duration: &duration,
		Studio:   &Studio{Name: "Northwind"},
		Performers: []Performer{{
			Name: "Jane Roe",
			BodyModifications: []BodyModification{
				{Kind: ModificationTattoo, Location: "Left arm", Description: "rose"},
				{Kind: ModificationPiercing, Location: "Navel"},
			},
		}},
		Images:       []Image{{URL: "https://img/1.jpg", Width: 1920, Height: 1080}},
		URLs:         []URL{{URL: "https://studio.example/1", Type: "STUDIO"}},
		Fingerprints: []Fingerprint{{Hash: "abc123", Algorithm: FingerprintOSHash, Duration: 3724}},
	}
	require.NoError(t, conn.Create(&scene).Error)
	require.NotEmpty(t, scene.ID)

	var loaded Scene
	err = conn.
		Preload("Studio").
		Preload("Performers.BodyModifications").
		Preload("Images").
		Preload("URLs").
		Preload("Fingerprints").
		First(&loaded, "id = ?", scene.ID).Error
	require.NoError(t, err)

	require.NotNil(t, loaded.Duration)
	assert.Equal(t, 3725, *loaded.Duration)
	assert.Equal(t, "Northwind", loaded.Studio.Name)
	require.Len(t, loaded.Performers, 1)
	assert.Len(t, loaded.Performers[0].Modifications(ModificationTattoo), 1)
	assert.Len(t, loaded.Performers[0].Modifications(ModificationPiercing), 1)
	require.Len(t, loaded.Images, 1)
	assert.Equal(t, 1920, loaded.Images[0].Width)
	assert.Equal(t, "STUDIO", loaded.URLs[0].Type)
	assert.Equal(t, FingerprintOSHash, loaded.Fingerprints[0].Algorithm)

	var count int64
	require.NoError(t, conn.Model(&Image{}).Where("owner_type = ?", OwnerScene).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFingerprintAlgorithmValid(t *testing.T) {
	assert.True(t, FingerprintPHash.Valid())
	assert.False(t, FingerprintAlgorithm("SHA1").Valid())
}
