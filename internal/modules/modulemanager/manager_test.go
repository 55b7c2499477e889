package modulemanager

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockModule struct {
	mock.Mock
	id   string
	core bool
}

func (m *MockModule) ID() string   { return m.id }
func (m *MockModule) Name() string { return "Mock " + m.id }
func (m *MockModule) Core() bool   { return m.core }

func (m *MockModule) Migrate(db *gorm.DB) error {
	return m.Called(db).Error(0)
}

func (m *MockModule) Init() error {
	return m.Called().Error(0)
}

func (m *MockModule) HealthCheck(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestLoadAllMigratesAndInits(t *testing.T) {
	registry := NewRegistry()
	a := &MockModule{id: "a"}
	a.On("Migrate", mock.Anything).Return(nil)
	a.On("Init").Return(nil)
	registry.Register(a)

	require.NoError(t, registry.LoadAll(nil))
	a.AssertExpectations(t)

	require.NoError(t, registry.LoadAll(nil), "second load is a no-op")
	a.AssertNumberOfCalls(t, "Init", 1)
}

func TestLoadAllSkipsDisabled(t *testing.T) {
	registry := NewRegistry()
	optional := &MockModule{id: "optional"}
	registry.Register(optional)
	registry.DisableModule("optional")

	require.NoError(t, registry.LoadAll(nil))
	optional.AssertNotCalled(t, "Init")
}

func TestLoadAllRejectsDisabledCore(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&MockModule{id: "core", core: true})
	registry.DisableModule("core")

	assert.ErrorContains(t, registry.LoadAll(nil), "core module")
}

func TestLoadAllPropagatesMigrateError(t *testing.T) {
	registry := NewRegistry()
	broken := &MockModule{id: "broken"}
	broken.On("Migrate", mock.Anything).Return(errors.New("no disk"))
	registry.Register(broken)

	err := registry.LoadAll(nil)
	assert.ErrorContains(t, err, "no disk")
	broken.AssertNotCalled(t, "Init")
}

func TestHealthCheck(t *testing.T) {
	registry := NewRegistry()
	good := &MockModule{id: "good"}
	good.On("HealthCheck", mock.Anything).Return(nil)
	bad := &MockModule{id: "bad"}
	bad.On("HealthCheck", mock.Anything).Return(errors.New("db down"))
	registry.Register(good)
	registry.Register(bad)

	statuses := registry.HealthCheck(context.Background())
	assert.Equal(t, HealthStateHealthy, statuses["good"].Status)
	assert.Equal(t, HealthStateUnhealthy, statuses["bad"].Status)
	assert.Equal(t, "db down", statuses["bad"].Message)

	ids := []string{}
	for _, m := range registry.ListModules() {
		ids = append(ids, m.ID())
	}
	assert.Equal(t, []string{"bad", "good"}, ids)
}
