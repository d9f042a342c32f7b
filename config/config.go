// Package config loads client settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"github.com/slackclone/apiclient/credential"
)

const (
	// APIURLEnv names the variable holding the backend base URL. The name is
	// shared with the web frontend so one .env serves both.
	APIURLEnv = "NEXT_PUBLIC_API_URL"

	// DefaultAPIURL is used when APIURLEnv is unset or empty.
	DefaultAPIURL = "http://localhost:8080/api/v1"
)

// DotEnvFiles are loaded, in order, by Load. Earlier files win and real
// environment variables win over both.
var DotEnvFiles = []string{".env.local", ".env"}

// Config holds the settings of the API client and the CLI.
type Config struct {
	APIURL    string        `envconfig:"NEXT_PUBLIC_API_URL" default:"http://localhost:8080/api/v1"`
	AppURL    string        `envconfig:"APP_URL" default:"http://localhost:3000"`
	Timeout   time.Duration `envconfig:"API_TIMEOUT" default:"30s"`
	TokenFile string        `envconfig:"TOKEN_FILE" default:""`
	LogLevel  string        `envconfig:"LOG_LEVEL" default:"info"`
	Debug     bool          `envconfig:"SLACKCLONE_DEBUG" default:"false"`
}

// APIURL returns the backend base URL from the environment, falling back to
// DefaultAPIURL when the variable is unset or empty.
func APIURL() string {
	if v := os.Getenv(APIURLEnv); v != "" {
		return v
	}
	return DefaultAPIURL
}

// Load reads DotEnvFiles that exist and then parses the environment.
func Load() (*Config, error) {
	for _, f := range DotEnvFiles {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
		log.Debug().Str("file", f).Msg("loaded env file")
	}
	return New()
}

// New creates a Config by parsing environment variables.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("api_url", cfg.APIURL).
		Str("app_url", cfg.AppURL).
		Dur("timeout", cfg.Timeout).
		Str("token_file", cfg.TokenFile).
		Bool("debug", cfg.Debug).
		Msg("Configuration loaded")

	return &cfg, nil
}

// ResolveDefaults fills values envconfig leaves empty and validates the rest.
// A variable that is set but empty gets the same default as an unset one.
func (c *Config) ResolveDefaults() error {
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.AppURL == "" {
		c.AppURL = "http://localhost:3000"
	}
	if c.TokenFile == "" {
		p, err := credential.DefaultFilePath()
		if err != nil {
			return err
		}
		c.TokenFile = p
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be > 0, got %s", c.Timeout)
	}
	for name, raw := range map[string]string{APIURLEnv: c.APIURL, "APP_URL": c.AppURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
		}
	}
	return nil
}
