// Package config loads client settings from defaults, an optional .env file
// and PORTAL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PORTAL"

// Config holds the client settings.
type Config struct {
	BaseURL  string        // service root
	Prefix   string        // API mount point
	Timeout  time.Duration // per-request timeout, 0 = none
	LogLevel string        // debug, info, warn, error
}

// Load reads and validates configuration. dotEnv, when non-empty, names a
// .env file that is loaded if present; a missing file is not an error.
func Load(dotEnv string) (Config, error) {
	cfg, err := Read(dotEnv)
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Read is Load without validation, for callers that override settings
// before checking them.
func Read(dotEnv string) (Config, error) {
	if dotEnv != "" {
		if _, err := os.Stat(dotEnv); err == nil {
			if err := godotenv.Load(dotEnv); err != nil {
				return Config{}, fmt.Errorf("config: godotenv(%s): %w", dotEnv, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config: stat(%s): %w", dotEnv, err)
		}
	}

	v := viper.New()
	v.SetDefault("base_url", "http://localhost:5000")
	v.SetDefault("prefix", "/api")
	v.SetDefault("timeout", time.Duration(0))
	v.SetDefault("log_level", "info")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	cfg := Config{
		BaseURL:  strings.TrimRight(v.GetString("base_url"), "/"),
		Prefix:   v.GetString("prefix"),
		Timeout:  v.GetDuration("timeout"),
		LogLevel: strings.ToLower(v.GetString("log_level")),
	}
	return cfg, nil
}

// Validate checks the settings are usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: invalid base url %q", c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config: negative timeout %s", c.Timeout)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
	return nil
}
