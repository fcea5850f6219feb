package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":10004", cfg.Listen)
	assert.Equal(t, "http://localhost:10004", cfg.BaseURL)
	assert.Equal(t, "*", cfg.CORSOrigin)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canopy.yaml")
	data := `
listen: ":9000"
log_level: debug
redis:
  addr: "localhost:6379"
  prefix: "test:surface:"
  ttl: 5m
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "test:surface:", cfg.Redis.Prefix)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)

	// Untouched keys keep their defaults.
	assert.Equal(t, "http://localhost:10004", cfg.BaseURL)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: [broken"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
