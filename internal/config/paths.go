package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/relog/config.yml
// - macOS: ~/Library/Application Support/relog/config.yml
// - Windows: %APPDATA%\relog\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "relog", "config.yml"), nil
}

// UserConfigDir returns the path to the user-level config directory.
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "relog"), nil
}

// ProjectConfigPath returns the path to the project-level config file,
// .relog.yml in the current directory.
func ProjectConfigPath() string {
	return ".relog.yml"
}

// LegacyProjectConfigPath returns the path to the legacy project-level JSON
// config file, kept for backward compatibility during migration.
func LegacyProjectConfigPath() string {
	return ".relog.json"
}
