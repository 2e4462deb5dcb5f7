package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/cmsadmin/internal/flagx"
	"github.com/dmitrijs2005/cmsadmin/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent
// fields keep their zero value and leave Config untouched.
type JsonConfig struct {
	APIBaseURL        string         `json:"api_base_url"`
	RequestTimeout    timex.Duration `json:"request_timeout"`
	RefreshStatuses   []int          `json:"refresh_statuses"`
	AuthPaths         []string       `json:"auth_paths"`
	SessionDSN        *string        `json:"session_dsn"`
	SessionPassphrase string         `json:"session_passphrase"`
	LogLevel          string         `json:"log_level"`
	LogFormat         string         `json:"log_format"`
	PageSize          int            `json:"page_size"`
}

// parseJson overlays cfg with the file named by -c or -config, if any.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if len(jc.RefreshStatuses) > 0 {
		cfg.RefreshStatuses = jc.RefreshStatuses
	}
	if len(jc.AuthPaths) > 0 {
		cfg.AuthPaths = jc.AuthPaths
	}
	// an explicit "" selects the in-memory session
	if jc.SessionDSN != nil {
		cfg.SessionDSN = *jc.SessionDSN
	}
	if jc.SessionPassphrase != "" {
		cfg.SessionPassphrase = jc.SessionPassphrase
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.LogFormat != "" {
		cfg.LogFormat = jc.LogFormat
	}
	if jc.PageSize > 0 {
		cfg.PageSize = jc.PageSize
	}
	return nil
}
