// Package yukodir provides constants and utilities for the .yuko directory structure.
package yukodir

import "path/filepath"

const (
	// Dir is the name of the yuko state directory.
	Dir = ".yuko"

	// DefaultTasksFile is the default task snapshot file name.
	// Unlike the files below it lives in the work directory itself, not
	// inside .yuko, so the task list sits next to the work it describes.
	DefaultTasksFile = "tasks.json"

	// DefaultSchemaFile is the default schema file name (inside .yuko).
	DefaultSchemaFile = "tasks.schema.json"

	// DefaultConfigFile is the default config file name (inside .yuko).
	DefaultConfigFile = "yuko.toml"
)

// TasksPath returns the full path to the task snapshot within a work directory.
func TasksPath(workDir string) string {
	if workDir == "." || workDir == "" {
		return DefaultTasksFile
	}
	return workDir + string(filepath.Separator) + DefaultTasksFile
}

// SchemaPath returns the full path to the schema file within a work directory.
func SchemaPath(workDir string) string {
	return joinPath(workDir, DefaultSchemaFile)
}

// ConfigPath returns the full path to the config file within a work directory.
func ConfigPath(workDir string) string {
	return joinPath(workDir, DefaultConfigFile)
}

// DirPath returns the full path to the .yuko directory within a work directory.
func DirPath(workDir string) string {
	if workDir == "." || workDir == "" {
		return Dir
	}
	return workDir + string(filepath.Separator) + Dir
}

func joinPath(workDir, file string) string {
	if workDir == "." || workDir == "" {
		return Dir + string(filepath.Separator) + file
	}
	return workDir + string(filepath.Separator) + Dir + string(filepath.Separator) + file
}
