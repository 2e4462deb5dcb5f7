package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/cmsadmin/internal/client/client"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds runtime settings for the cmsadmin CLI.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	// RefreshStatuses are the HTTP statuses treated as an expired token.
	RefreshStatuses []int
	// AuthPaths identify login/refresh endpoints, which are never retried.
	AuthPaths []string

	// SessionDSN is the SQLite file holding the session. Empty or
	// ":memory:" keeps the session for the lifetime of the process only.
	SessionDSN        string
	SessionPassphrase string

	LogLevel  string
	LogFormat string

	PageSize int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080/api"
	c.RequestTimeout = client.DefaultTimeout
	c.RefreshStatuses = append([]int(nil), client.DefaultRefreshStatuses...)
	c.AuthPaths = append([]string(nil), client.DefaultAuthPaths...)
	c.SessionDSN = "cmsadmin.db"
	c.SessionPassphrase = ""
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.PageSize = 10
}

// InMemorySession reports whether the session is not persisted.
func (c *Config) InMemorySession() bool {
	return c.SessionDSN == "" || c.SessionDSN == ":memory:"
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api base url %q", ErrInvalidConfig, c.APIBaseURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidConfig)
	}
	for _, s := range c.RefreshStatuses {
		if s < 400 || s > 599 {
			return fmt.Errorf("%w: refresh status %d is not an error status", ErrInvalidConfig, s)
		}
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("%w: page size must be positive", ErrInvalidConfig)
	}
	return nil
}

// Load builds a Config from defaults, then overlays JSON (if -c/-config is
// present in args), the environment, and finally flags from args. args
// excludes the program name.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
