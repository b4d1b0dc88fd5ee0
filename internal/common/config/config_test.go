package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ENV", "READ_TIMEOUT", "WRITE_TIMEOUT",
		"CREATOR_DB_PATH", "CREATOR_DEBOUNCE_MS", "CORS_ORIGINS", "LOG_LEVEL", "CREATOR_CONFIG",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg := Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 10, cfg.ReadTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Debounce())
	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
	assert.Equal(t, log.LevelInfo, cfg.Level())
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "creator.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
port = "8080"
db_path = "/tmp/designs.db"
debounce_ms = 100
allow_origins = ["https://a.example"]
log_level = "debug"
`), 0o644))

	t.Setenv("CREATOR_CONFIG", path)
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ORIGINS", " https://b.example, ,https://c.example ")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/tmp/designs.db", cfg.DBPath)
	assert.Equal(t, 100*time.Millisecond, cfg.Debounce())
	assert.Equal(t, []string{"https://b.example", "https://c.example"}, cfg.AllowOrigins)
	assert.Equal(t, log.LevelDebug, cfg.Level())
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("port = "), 0o644))
	_, err = LoadFile(path)
	assert.Error(t, err)
}

func TestBadEnvIntKeepsValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("CREATOR_DEBOUNCE_MS", "soon")
	assert.Equal(t, 250, Load().DebounceMS)
}
