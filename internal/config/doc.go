// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.yuko/yuko.toml or OS-specific config directory)
// 3. Project config file (yuko.toml or .yuko.toml in the project root)
// 4. Environment variables (YUKO_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.yuko/yuko.toml (preferred)
// - Windows: %APPDATA%\yuko\yuko.toml
// - macOS: ~/Library/Application Support/yuko/yuko.toml
// - Linux/BSD: $XDG_CONFIG_HOME/yuko/yuko.toml or ~/.config/yuko/yuko.toml
//
// Project-level config locations (overrides user config):
// - ./yuko.toml (preferred)
// - ./.yuko.toml
package config
