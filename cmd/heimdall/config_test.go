package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinytelemetry/heimdall/internal/model"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.yml"), nil)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, time.Hour, cfg.StatusInterval)
	assert.Equal(t, 30*time.Second, cfg.MonitorInterval)
	assert.Equal(t, string(model.PageDashboard), cfg.DefaultPage)
	assert.Equal(t, "json", cfg.ExportFormat)
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("base-url: http://api.internal:9000/api/v1\nmonitor-interval: 10s\ndefault-page: products\n"), 0o644))
	t.Setenv("HEIMDALL_DEFAULT_PAGE", "analytics")

	cfg, err := loadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://api.internal:9000/api/v1", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.MonitorInterval)
	assert.Equal(t, "analytics", cfg.DefaultPage)
}

func TestLoadConfig_FlagsWin(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("HEIMDALL_BASE_URL", "http://env/api/v1")

	cmd := newRootCmd()
	require.NoError(t, cmd.Flags().Set("base-url", "http://flag/api/v1"))

	cfg, err := loadConfig("", cmd.Flags())
	require.NoError(t, err)
	assert.Equal(t, "http://flag/api/v1", cfg.BaseURL)
}

func TestLoadConfig_RejectsUnknownPage(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("HEIMDALL_DEFAULT_PAGE", "settings")

	_, err := loadConfig("", nil)
	assert.ErrorContains(t, err, "default-page")
}
