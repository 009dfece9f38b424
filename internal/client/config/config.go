package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/genius-wizard-dev/storefront/internal/client/api"
	"github.com/genius-wizard-dev/storefront/internal/flagx"
	"github.com/genius-wizard-dev/storefront/internal/logging"
)

const (
	envPrefix = "STOREFRONT"

	defaultBaseURL           = "http://localhost:8080"
	defaultRequestTimeout    = 15 * time.Second
	defaultRefreshTimeout    = 10 * time.Second
	defaultIntrospectTimeout = 5 * time.Second
)

// Config holds runtime settings for the storefront CLI.
type Config struct {
	BaseURL     string `envconfig:"BASE_URL" validate:"required,url"`
	TokenDBPath string `envconfig:"TOKEN_DB" validate:"required"`

	RequestTimeout    time.Duration `envconfig:"REQUEST_TIMEOUT" validate:"gt=0"`
	RefreshTimeout    time.Duration `envconfig:"REFRESH_TIMEOUT" validate:"gt=0"`
	Introspect        bool          `envconfig:"INTROSPECT"`
	IntrospectTimeout time.Duration `envconfig:"INTROSPECT_TIMEOUT" validate:"gt=0"`

	Endpoints api.Endpoints `envconfig:"ENDPOINTS"`

	LogLevel  string `envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat string `envconfig:"LOG_FORMAT" validate:"oneof=text json"`
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = defaultBaseURL
	c.TokenDBPath = defaultTokenDBPath()
	c.RequestTimeout = defaultRequestTimeout
	c.RefreshTimeout = defaultRefreshTimeout
	c.Introspect = true
	c.IntrospectTimeout = defaultIntrospectTimeout
	c.Endpoints = api.DefaultEndpoints()
	c.LogLevel = logging.LevelInfo
	c.LogFormat = logging.FormatText
}

func defaultTokenDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "storefront", "token.db")
}

// Load builds the configuration for a process started with args (without
// the program name). getwd locates the .env file.
func Load(args []string, getwd func() (string, error)) (*Config, error) {
	c := NewConfig()

	if path := flagx.ConfigPath(args); path != "" {
		if err := c.LoadJSON(path); err != nil {
			return nil, err
		}
	}
	if err := c.LoadDotEnv(getwd); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := c.LoadEnv(); err != nil {
		return nil, err
	}
	if err := c.ParseFlags(args); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the final configuration.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// API returns the api client settings.
func (c *Config) API() api.Config {
	return api.Config{
		BaseURL:           c.BaseURL,
		RequestTimeout:    c.RequestTimeout,
		RefreshTimeout:    c.RefreshTimeout,
		Introspect:        c.Introspect,
		IntrospectTimeout: c.IntrospectTimeout,
		Endpoints:         c.Endpoints,
	}
}

// Logging returns the logger options.
func (c *Config) Logging() logging.Options {
	return logging.Options{Level: c.LogLevel, Format: c.LogFormat}
}
