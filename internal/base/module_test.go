package base

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestBaseModuleHealthCheck(t *testing.T) {
	m := NewBaseModule("system.test", "Test", "1.0.0", true)
	assert.Equal(t, "system.test", m.ID())
	assert.True(t, m.Core())

	assert.ErrorIs(t, m.HealthCheck(context.Background()), ErrModuleNotInitialized)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	m.SetDB(db)
	m.SetInitialized(true)

	assert.NoError(t, m.HealthCheck(context.Background()))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	err = m.HealthCheck(context.Background())
	var modErr *ModuleError
	require.ErrorAs(t, err, &modErr)
	assert.Equal(t, "DATABASE_PING", modErr.Code)
}
