// Package config reads the server settings from the environment.
package config

import (
	"fmt"
	"net"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"

	"github.com/Zachkp/folio/internal/imageref"
	"github.com/Zachkp/folio/internal/render"
)

// Config holds every setting of the server.
type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	SiteTitle string `env:"SITE_TITLE" envDefault:"Portfolio"`
	SiteAbout string `env:"SITE_ABOUT"`
	SiteDir   string `env:"SITE_DIR" envDefault:"."`
	StaticDir string `env:"STATIC_DIR" envDefault:"static"`
	ImagesDir string `env:"IMAGES_DIR" envDefault:"images"`
	WasmDir   string `env:"WASM_DIR" envDefault:"wasm"`

	Analytics  bool   `env:"ANALYTICS" envDefault:"true"`
	DBPath     string `env:"DB_PATH" envDefault:"folio.db"`
	AdminToken string `env:"ADMIN_TOKEN"`
	GinMode    string `env:"GIN_MODE"`

	LogLevel zapcore.Level `env:"LOG_LEVEL" envDefault:"info"`

	DefaultImage    string             `env:"DEFAULT_IMAGE"`
	ProjectFallback bool               `env:"PROJECT_FALLBACK" envDefault:"true"`
	BlogFailure     render.FailureMode `env:"BLOG_FAILURE" envDefault:"silent"`
	PostFailure     render.FailureMode `env:"POST_FAILURE" envDefault:"visible"`
	ScrollDelay     time.Duration      `env:"NAV_SCROLL_DELAY" envDefault:"100ms"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load parses the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Addr is the listen address.
func (c Config) Addr() string {
	return net.JoinHostPort("", c.Port)
}

// Policy returns the renderer failure policy.
func (c Config) Policy() render.Policy {
	return render.Policy{
		DisableProjectFallback: !c.ProjectFallback,
		BlogFailure:            c.BlogFailure,
		PostFailure:            c.PostFailure,
	}
}

// Images returns the image resolver.
func (c Config) Images() imageref.Resolver {
	return imageref.New(c.DefaultImage)
}
