// Package config provides centralized configuration management for the
// headcount service. Configuration is read from environment variables via
// envconfig and optionally overlaid with a YAML file.
//
// # Configuration Sources
//
// In order of precedence:
//
//  1. Environment variables (highest priority)
//  2. Configuration file (YAML)
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables carry the STAFFGAP_ prefix:
//
//	STAFFGAP_SERVER_PORT=8080
//	STAFFGAP_LOGGING_LEVEL=debug
//	STAFFGAP_PATHS_BASE_DIR=/srv/staffgap
//	STAFFGAP_HEADCOUNT_WINDOWS=13,26
//
// STAFFGAP_CONFIG_FILE points at an explicit YAML file; otherwise
// config.yaml and configs/config.yaml are probed.
//
// # Path Management
//
// Paths resolves every file location from a single base directory, which
// defaults to the directory of the running executable:
//
//	paths, err := config.ResolvePaths(cfg.Paths)
//	rosterPath := paths.GetRosterPath()
package config
