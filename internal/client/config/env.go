package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// LoadDotEnv exports the variables of .env in the working directory that
// are not already set. A missing file is not an error.
func (c *Config) LoadDotEnv(getwd func() (string, error)) error {
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

// LoadEnv overlays STOREFRONT_* variables. Unset variables leave the
// current value alone.
func (c *Config) LoadEnv() error {
	if err := envconfig.Process(envPrefix, c); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	return nil
}
