package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# Yuko configuration file
# Every value can be overridden by environment variables or CLI flags

# Tasks file (relative to project root)
tasks_file = "tasks.json"

# Schema file used by yuko doctor; leave empty for the embedded schema
schema_file = ""

# Save the tasks file after every change; false saves once on quit
autosave = true

# Ask for confirmation before deleting a task
confirm_delete = true

# Color theme: dark or light
theme = "dark"

# Log directory (supports ~ expansion and %VAR% on Windows)
log_dir = "~/.yuko"

# Log level: debug, info, warn, error
log_level = "info"

# Log format: text, json, logfmt
log_format = "text"

# Show timestamps in console logs
log_timestamps = false

# Show caller location in console logs
log_caller = false

# Write a JSONL session log of every change
session_log = true
`
}
