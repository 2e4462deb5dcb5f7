// Package config loads runtime configuration for the cmsadmin CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Environment variables prefixed with CMS_ (see EnvConfig).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the CMS API, e.g. https://cms.example.com/api
//	-t int      per-request timeout (seconds)
//	-d string   session database file; empty keeps the session in memory
//	-l string   log level (debug, info, warn, error)
//	-f string   log format (text, json, zap)
//	-s list     statuses that trigger a token refresh, e.g. 401,403
//
// -h or --help prints the flags and the CMS_* variables (PrintUsage).
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "15s" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "https://cms.example.com/api",
//	  "request_timeout": "15s",
//	  "refresh_statuses": [401, 403],
//	  "session_dsn": "/home/me/.cmsadmin.db",
//	  "log_level": "info",
//	  "page_size": 10
//	}
package config
