package devserver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/pflag"

	"github.com/genius-wizard-dev/storefront/internal/logging"
)

const envPrefix = "DEVAPI"

// Config holds runtime settings for the development backend.
type Config struct {
	ListenAddr string `envconfig:"LISTEN_ADDR" validate:"required"`
	// Secret signs access tokens. Empty means a random per-process secret.
	Secret string `envconfig:"SECRET"`

	AccessTTL     time.Duration `envconfig:"ACCESS_TTL" validate:"gt=0"`
	RefreshWindow time.Duration `envconfig:"REFRESH_WINDOW" validate:"gtefield=AccessTTL"`

	SeedUser     string `envconfig:"SEED_USER"`
	SeedPassword string `envconfig:"SEED_PASSWORD" validate:"required_with=SeedUser"`

	LogLevel  string `envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat string `envconfig:"LOG_FORMAT" validate:"oneof=text json"`
}

func NewConfig() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8080"
	c.AccessTTL = 5 * time.Minute
	c.RefreshWindow = time.Hour
	c.SeedUser = "demo"
	c.SeedPassword = "demo1234"
	c.LogLevel = logging.LevelInfo
	c.LogFormat = logging.FormatText
}

// LoadConfig applies defaults, then .env, then DEVAPI_* variables, then
// flags, and validates the result.
func LoadConfig(args []string, getwd func() (string, error)) (*Config, error) {
	c := NewConfig()

	if err := c.loadDotEnv(getwd); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := envconfig.Process(envPrefix, c); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := c.parseFlags(args); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) loadDotEnv(getwd func() (string, error)) error {
	wd, err := getwd()
	if err != nil {
		return err
	}
	err = godotenv.Load(filepath.Join(wd, ".env"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (c *Config) parseFlags(args []string) error {
	fs := pflag.NewFlagSet("devapi", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVarP(&c.ListenAddr, "listen", "a", c.ListenAddr, "Address to listen on")
	fs.StringVarP(&c.Secret, "secret", "s", c.Secret, "HMAC secret for access tokens")
	fs.DurationVar(&c.AccessTTL, "access-ttl", c.AccessTTL, "Access token lifetime")
	fs.DurationVar(&c.RefreshWindow, "refresh-window", c.RefreshWindow, "How long after issue a token may be refreshed")
	fs.StringVar(&c.SeedUser, "seed-user", c.SeedUser, "Username created at startup (empty to skip)")
	fs.StringVar(&c.SeedPassword, "seed-password", c.SeedPassword, "Password of the seed user")
	fs.StringVarP(&c.LogLevel, "log-level", "l", c.LogLevel, "Logging level (debug, info, warn, error)")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "Log format (text, json)")

	return fs.Parse(args)
}

func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c *Config) Logging() logging.Options {
	return logging.Options{Level: c.LogLevel, Format: c.LogFormat}
}
