package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("FPOS_DATA_DIR", dataDir)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dataDir, "fpos.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(dataDir, "presets.lua"), cfg.PresetsPath)
	assert.Equal(t, "http://localhost:8000", cfg.BackendURL)
	assert.Equal(t, 2*time.Second, cfg.LogPollInterval)
	assert.Equal(t, 3*time.Second, cfg.PendingInterval)
}

func TestNewConfigFile(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("FPOS_DATA_DIR", dataDir)

	yaml := []byte("backend_url: http://ops.internal:9000\nlog_poll_interval_ms: 500\npending_interval_ms: 1000\n")
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "config.yaml"), yaml, 0644))

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "http://ops.internal:9000", cfg.BackendURL)
	assert.Equal(t, 500*time.Millisecond, cfg.LogPollInterval)
	assert.Equal(t, time.Second, cfg.PendingInterval)
}

func TestEnvOverridesFile(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("FPOS_DATA_DIR", dataDir)
	t.Setenv("FPOS_BACKEND_URL", "http://override:8000")
	t.Setenv("FPOS_LOG_POLL_MS", "250")

	yaml := []byte("backend_url: http://ops.internal:9000\nlog_poll_interval_ms: 500\n")
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "config.yaml"), yaml, 0644))

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "http://override:8000", cfg.BackendURL)
	assert.Equal(t, 250*time.Millisecond, cfg.LogPollInterval)
}

func TestInvalidPollEnv(t *testing.T) {
	t.Setenv("FPOS_DATA_DIR", t.TempDir())
	t.Setenv("FPOS_LOG_POLL_MS", "fast")

	_, err := New()
	assert.Error(t, err)
}

func TestBrokenConfigFile(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("FPOS_DATA_DIR", dataDir)
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "config.yaml"), []byte("{not yaml"), 0644))

	_, err := New()
	assert.Error(t, err)
}

func TestEnsureDataDir(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "nested", "fpos")
	t.Setenv("FPOS_DATA_DIR", dataDir)

	cfg, err := New()
	require.NoError(t, err)
	require.NoError(t, cfg.EnsureDataDir())

	info, err := os.Stat(dataDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
