package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "partytable.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.ListenAddress())
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "file", cfg.Server.Store)
	assert.Equal(t, "partytable-data", cfg.Server.DataDir)
	require.NotNil(t, cfg.Wheel)
	assert.Equal(t, 3000, cfg.Wheel.SpinDelayMs)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
server {
  address   = "0.0.0.0"
  port      = 9000
  log_level = "debug"
  data_dir  = "/var/lib/partytable"
  store     = "sqlite"
}

wheel {
  spin_delay_ms = 500
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.ListenAddress())
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "sqlite", cfg.Server.Store)
	assert.Equal(t, "/var/lib/partytable", cfg.Server.DataDir)
	assert.Equal(t, 500, cfg.Wheel.SpinDelayMs)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigPartialFileFillsDefaults(t *testing.T) {
	path := writeConfig(t, `
server {
  port = 9999
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost:9999", cfg.ListenAddress())
	assert.Equal(t, "file", cfg.Server.Store)
	require.NotNil(t, cfg.Wheel, "wheel block is optional")
	assert.Equal(t, 3000, cfg.Wheel.SpinDelayMs)
}

func TestLoadConfigInvalidHCL(t *testing.T) {
	path := writeConfig(t, `server { port = `)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Server.Port = 70000
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Server.Store = "redis"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Wheel.SpinDelayMs = -1
	assert.Error(t, cfg.Validate())
}
