package config

import (
	"io"

	"github.com/spf13/pflag"
)

// ParseFlags overlays command-line flags. -c/--config is accepted here
// too, but the file itself is read earlier by Load.
func (c *Config) ParseFlags(args []string) error {
	fs := pflag.NewFlagSet("storefront", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringP("config", "c", "", "Path to JSON config file")
	fs.StringVarP(&c.BaseURL, "base-url", "a", c.BaseURL, "Storefront API base URL")
	fs.StringVar(&c.TokenDBPath, "token-db", c.TokenDBPath, "Path to the token database")
	fs.DurationVar(&c.RequestTimeout, "request-timeout", c.RequestTimeout, "Per-request timeout")
	fs.DurationVar(&c.RefreshTimeout, "refresh-timeout", c.RefreshTimeout, "Token refresh timeout")
	fs.BoolVar(&c.Introspect, "introspect", c.Introspect, "Validate the token with the backend on each request")
	fs.DurationVar(&c.IntrospectTimeout, "introspect-timeout", c.IntrospectTimeout, "Token introspection timeout")
	fs.StringVarP(&c.LogLevel, "log-level", "l", c.LogLevel, "Logging level (debug, info, warn, error)")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "Log format (text, json)")

	return fs.Parse(args)
}
