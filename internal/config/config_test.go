package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "8981", cfg.Port)
	assert.Equal(t, "http://localhost:5000", cfg.APIBaseURL)
	assert.Equal(t, "/login", cfg.LoginPath)
	assert.Equal(t, "light", cfg.DefaultTheme)
	assert.Equal(t, 100*time.Millisecond, cfg.ThemeSettleDelay)
	assert.Equal(t, time.Duration(0), cfg.FetchTimeout)
	assert.Equal(t, "hashed", cfg.ScatterColorMode)
	assert.False(t, cfg.DiscardStaleLoads)
	assert.Equal(t, "local", cfg.StorageMode)
	assert.Equal(t, "./snapshots", cfg.LocalSnapshotsDir)
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("API_BASE_URL", "https://api.example.com")
	t.Setenv("THEME_SETTLE_DELAY", "250ms")
	t.Setenv("SCATTER_COLOR_MODE", "random")
	t.Setenv("DISCARD_STALE_RENDERS", "true")
	t.Setenv("MOCKUP_MODE", "true")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, 250*time.Millisecond, cfg.ThemeSettleDelay)
	assert.Equal(t, "random", cfg.ScatterColorMode)
	assert.True(t, cfg.DiscardStaleLoads)
	assert.True(t, cfg.MockupMode)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown color mode", env: map[string]string{"SCATTER_COLOR_MODE": "rainbow"}},
		{name: "gcs without bucket", env: map[string]string{"STORAGE_MODE": "gcs"}},
		{name: "relative login path", env: map[string]string{"LOGIN_PATH": "login"}},
		{name: "bad duration", env: map[string]string{"THEME_SETTLE_DELAY": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestGetVersion(t *testing.T) {
	t.Setenv("APP_VERSION", "1.2.3")
	assert.Equal(t, "1.2.3", GetVersion())

	t.Setenv("APP_VERSION", "")
	assert.Equal(t, Version, GetVersion())
}
