package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// EnvConfig mirrors Config for environment overrides. Unset variables
// leave Config untouched, so no field has an env-default.
type EnvConfig struct {
	APIBaseURL        string        `env:"CMS_API_BASE_URL"`
	RequestTimeout    time.Duration `env:"CMS_REQUEST_TIMEOUT"`
	RefreshStatuses   []int         `env:"CMS_REFRESH_STATUSES" env-separator:","`
	AuthPaths         []string      `env:"CMS_AUTH_PATHS" env-separator:","`
	SessionDSN        string        `env:"CMS_SESSION_DSN"`
	SessionPassphrase string        `env:"CMS_SESSION_PASSPHRASE"`
	LogLevel          string        `env:"CMS_LOG_LEVEL"`
	LogFormat         string        `env:"CMS_LOG_FORMAT"`
	PageSize          int           `env:"CMS_PAGE_SIZE"`
}

func parseEnv(cfg *Config) error {
	var ec EnvConfig
	if err := cleanenv.ReadEnv(&ec); err != nil {
		return err
	}

	if ec.APIBaseURL != "" {
		cfg.APIBaseURL = ec.APIBaseURL
	}
	if ec.RequestTimeout > 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
	if len(ec.RefreshStatuses) > 0 {
		cfg.RefreshStatuses = ec.RefreshStatuses
	}
	if len(ec.AuthPaths) > 0 {
		cfg.AuthPaths = ec.AuthPaths
	}
	if ec.SessionDSN != "" {
		cfg.SessionDSN = ec.SessionDSN
	}
	if ec.SessionPassphrase != "" {
		cfg.SessionPassphrase = ec.SessionPassphrase
	}
	if ec.LogLevel != "" {
		cfg.LogLevel = ec.LogLevel
	}
	if ec.LogFormat != "" {
		cfg.LogFormat = ec.LogFormat
	}
	if ec.PageSize > 0 {
		cfg.PageSize = ec.PageSize
	}
	return nil
}

// EnvUsage lists the supported environment variables for the help output.
func EnvUsage() (string, error) {
	return cleanenv.GetDescription(&EnvConfig{}, nil)
}
