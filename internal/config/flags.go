package config

import "flag"

// parseFlags defines and parses CLI flags.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	return parseFlagsHelper(cfg, fs, args, nil, "")
}

// parseFlagsWithSources parses CLI flags and updates source tracking.
func parseFlagsWithSources(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	return parseFlagsHelper(cfg, fs, args, sources, SourceFlag)
}

// parseFlagsHelper is the shared implementation for flag parsing.
// Flags bind to locals seeded from the current config so that only flags
// the user actually passed override earlier sources.
// If sources is non-nil, it tracks the source of each value.
func parseFlagsHelper(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource, source ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("yuko", flag.ContinueOnError)
	}

	// Paths
	var tasksFile, schemaFile, logDir string
	fs.StringVar(&tasksFile, "tasks", cfg.TasksFile, "Path to tasks file")
	fs.StringVar(&schemaFile, "schema", cfg.SchemaFile, "Path to schema file")
	fs.StringVar(&logDir, "log-dir", cfg.LogDir, "Log directory")

	// Behavior
	var autoSave, confirmDelete bool
	var theme string
	fs.BoolVar(&autoSave, "autosave", cfg.AutoSave, "Save tasks file after every change")
	fs.BoolVar(&confirmDelete, "confirm-delete", cfg.ConfirmDelete, "Ask before deleting a task")
	fs.StringVar(&theme, "theme", cfg.Theme, "Color theme (dark, light)")

	// Logging
	var logLevel, logFormat string
	var logTimestamps, logCaller, sessionLog bool
	fs.StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&logFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&logTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&logCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")
	fs.BoolVar(&sessionLog, "session-log", cfg.SessionLog, "Write a JSONL session log")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Map flag names to source field names
	flagToSource := map[string]string{
		"tasks":          "tasks_file",
		"schema":         "schema_file",
		"log-dir":        "log_dir",
		"autosave":       "autosave",
		"confirm-delete": "confirm_delete",
		"theme":          "theme",
		"log-level":      "log_level",
		"log-format":     "log_format",
		"log-timestamps": "log_timestamps",
		"log-caller":     "log_caller",
		"session-log":    "session_log",
	}

	// Track which flags were set and update source tracking
	flagSet := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		flagSet[f.Name] = true
		if sources == nil {
			return
		}
		if fieldName, ok := flagToSource[f.Name]; ok {
			sources[fieldName] = source
		}
	})

	// Apply explicitly set flags to config
	if flagSet["tasks"] {
		cfg.TasksFile = tasksFile
	}
	if flagSet["schema"] {
		cfg.SchemaFile = schemaFile
	}
	if flagSet["log-dir"] {
		cfg.LogDir = logDir
	}
	if flagSet["autosave"] {
		cfg.AutoSave = autoSave
	}
	if flagSet["confirm-delete"] {
		cfg.ConfirmDelete = confirmDelete
	}
	if flagSet["theme"] {
		cfg.Theme = theme
	}
	if flagSet["log-level"] {
		cfg.LogLevel = logLevel
	}
	if flagSet["log-format"] {
		cfg.LogFormat = logFormat
	}
	if flagSet["log-timestamps"] {
		cfg.LogTimestamps = logTimestamps
	}
	if flagSet["log-caller"] {
		cfg.LogCaller = logCaller
	}
	if flagSet["session-log"] {
		cfg.SessionLog = sessionLog
	}

	return nil
}
