package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/Zachkp/folio/internal/imageref"
	"github.com/Zachkp/folio/internal/render"
)

func TestDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, ".", cfg.SiteDir)
	assert.Equal(t, "folio.db", cfg.DBPath)
	assert.True(t, cfg.Analytics)
	assert.Equal(t, zapcore.InfoLevel, cfg.LogLevel)
	assert.Equal(t, 100*time.Millisecond, cfg.ScrollDelay)
	assert.Equal(t, render.DefaultPolicy(), cfg.Policy())
	assert.Equal(t, imageref.Default, cfg.Images())
}

func TestOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"PORT":             "9000",
		"LOG_LEVEL":        "debug",
		"PROJECT_FALLBACK": "false",
		"BLOG_FAILURE":     "visible",
		"POST_FAILURE":     "silent",
		"NAV_SCROLL_DELAY": "250ms",
		"DEFAULT_IMAGE":    "/images/fallback.png",
		"ANALYTICS":        "false",
	})
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr())
	assert.False(t, cfg.Analytics)
	assert.Equal(t, zapcore.DebugLevel, cfg.LogLevel)
	assert.Equal(t, render.Policy{DisableProjectFallback: true, BlogFailure: render.Visible, PostFailure: render.Silent}, cfg.Policy())
	assert.Equal(t, 250*time.Millisecond, cfg.ScrollDelay)
	assert.Equal(t, "/images/fallback.png", cfg.Images().Resolve(""))
}

func TestInvalidFailureMode(t *testing.T) {
	_, err := LoadFrom(map[string]string{"POST_FAILURE": "loud"})
	assert.Error(t, err)
}
