package config

import (
	"os"
	"strings"
)

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	loadFromEnvHelper(cfg, nil, "")
}

// loadFromEnvWithSources loads environment variables and updates source tracking.
func loadFromEnvWithSources(cfg *Config, sources map[string]ConfigSource) {
	loadFromEnvHelper(cfg, sources, SourceEnv)
}

// loadFromEnvHelper is the shared implementation for env loading.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnvHelper(cfg *Config, sources map[string]ConfigSource, source ConfigSource) {
	mark := func(field string) {
		if sources != nil {
			sources[field] = source
		}
	}

	if v := os.Getenv("YUKO_TASKS"); v != "" {
		cfg.TasksFile = v
		mark("tasks_file")
	}
	if v := os.Getenv("YUKO_SCHEMA"); v != "" {
		cfg.SchemaFile = v
		mark("schema_file")
	}
	if v := os.Getenv("YUKO_LOG_DIR"); v != "" {
		cfg.LogDir = v
		mark("log_dir")
	}
	if v := os.Getenv("YUKO_AUTOSAVE"); v != "" {
		cfg.AutoSave = boolFromString(v)
		mark("autosave")
	}
	if v := os.Getenv("YUKO_CONFIRM_DELETE"); v != "" {
		cfg.ConfirmDelete = boolFromString(v)
		mark("confirm_delete")
	}
	if v := os.Getenv("YUKO_THEME"); v != "" {
		cfg.Theme = v
		mark("theme")
	}

	// Logging configuration
	if v := os.Getenv("YUKO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		mark("log_level")
	}
	if v := os.Getenv("YUKO_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		mark("log_format")
	}
	if v := os.Getenv("YUKO_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		mark("log_timestamps")
	}
	if v := os.Getenv("YUKO_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		mark("log_caller")
	}
	if v := os.Getenv("YUKO_SESSION_LOG"); v != "" {
		cfg.SessionLog = boolFromString(v)
		mark("session_log")
	}
}

func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
