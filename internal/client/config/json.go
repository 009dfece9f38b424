package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// Duration reads either a Go duration string ("3s") or integer
// nanoseconds from JSON.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return errors.New("invalid duration")
	}
}

// jsonConfig mirrors Config for the file format. Pointer fields tell
// "absent" from zero.
type jsonConfig struct {
	BaseURL           *string   `json:"base_url"`
	TokenDBPath       *string   `json:"token_db"`
	RequestTimeout    *Duration `json:"request_timeout"`
	RefreshTimeout    *Duration `json:"refresh_timeout"`
	Introspect        *bool     `json:"introspect"`
	IntrospectTimeout *Duration `json:"introspect_timeout"`
	LogLevel          *string   `json:"log_level"`
	LogFormat         *string   `json:"log_format"`
	Endpoints         *struct {
		Login      string `json:"login"`
		Register   string `json:"register"`
		Logout     string `json:"logout"`
		Refresh    string `json:"refresh"`
		Introspect string `json:"introspect"`
	} `json:"endpoints"`
}

// LoadJSON overlays the fields present in the JSON file at path.
func (c *Config) LoadJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&c.BaseURL, jc.BaseURL)
	setString(&c.TokenDBPath, jc.TokenDBPath)
	setString(&c.LogLevel, jc.LogLevel)
	setString(&c.LogFormat, jc.LogFormat)
	setDuration(&c.RequestTimeout, jc.RequestTimeout)
	setDuration(&c.RefreshTimeout, jc.RefreshTimeout)
	setDuration(&c.IntrospectTimeout, jc.IntrospectTimeout)
	if jc.Introspect != nil {
		c.Introspect = *jc.Introspect
	}

	if e := jc.Endpoints; e != nil {
		setString(&c.Endpoints.Login, &e.Login)
		setString(&c.Endpoints.Register, &e.Register)
		setString(&c.Endpoints.Logout, &e.Logout)
		setString(&c.Endpoints.Refresh, &e.Refresh)
		setString(&c.Endpoints.Introspect, &e.Introspect)
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
