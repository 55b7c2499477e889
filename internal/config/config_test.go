package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "curator.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
server:
  port: 9000
database:
  type: sqlite
  data_dir: /var/lib/curator
logging:
  level: debug
`)

	cm := NewConfigManager()
	require.NoError(t, cm.LoadConfig(path))

	cfg := cm.GetConfig()
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/var/lib/curator/curator.db", cfg.Database.DatabasePath)
	assert.Equal(t, 25, cfg.Catalog.DefaultPageSize, "unset values keep defaults")
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "server:\n  port: 9000\n")
	t.Setenv("CURATOR_PORT", "9500")
	t.Setenv("CURATOR_READ_TIMEOUT", "5s")
	t.Setenv("CURATOR_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cm := NewConfigManager()
	require.NoError(t, cm.LoadConfig(path))

	cfg := cm.GetConfig()
	assert.Equal(t, 9500, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}

func TestInvalidConfigRejected(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"port", "server:\n  port: 70000\n", "server.port"},
		{"database", "database:\n  type: oracle\n", "database.type"},
		{"page size", "catalog:\n  default_page_size: 500\n", "catalog.default_page_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.body)
			cm := NewConfigManager()

			err := cm.LoadConfig(path)
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, 8080, cm.GetConfig().Server.Port, "failed load keeps previous config")
		})
	}
}

func TestBadEnvValue(t *testing.T) {
	t.Setenv("CURATOR_PORT", "eighty")
	err := NewConfigManager().LoadConfig("")
	assert.ErrorContains(t, err, "CURATOR_PORT")
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "server:\n  port: 9100\n")

	cm := NewConfigManager()
	require.NoError(t, cm.LoadConfig(path))
	require.NoError(t, cm.SaveConfig())

	reloaded := NewConfigManager()
	require.NoError(t, reloaded.LoadConfig(path))
	assert.Equal(t, 9100, reloaded.GetConfig().Server.Port)
}

func TestWatcherNotifiedOnLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "server:\n  port: 9000\n")
	cm := NewConfigManager()

	changed := make(chan int, 1)
	cm.AddWatcher(func(_, newConfig *Config) {
		changed <- newConfig.Server.Port
	})
	require.NoError(t, cm.LoadConfig(path))

	select {
	case port := <-changed:
		assert.Equal(t, 9000, port)
	case <-time.After(time.Second):
		t.Fatal("watcher not called")
	}
}

func TestWatchReloadsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := writeConfig(t, dir, "server:\n  port: 9000\n")

	cm := NewConfigManager()
	require.NoError(t, cm.LoadConfig(path))

	ports := make(chan int, 16)
	cm.AddWatcher(func(_, newConfig *Config) {
		select {
		case ports <- newConfig.Server.Port:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- cm.Watch(ctx) }()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	writeConfig(t, dir, "server:\n  port: 9200\n")

	deadline := time.After(3 * time.Second)
	for found := false; !found; {
		select {
		case port := <-ports:
			found = port == 9200
		case <-deadline:
			t.Fatal("config was not reloaded")
		}
	}
	assert.Equal(t, 9200, cm.GetConfig().Server.Port)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatchWithoutPath(t *testing.T) {
	err := NewConfigManager().Watch(context.Background())
	assert.Error(t, err)
}
