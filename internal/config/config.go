// Package config provides hierarchical configuration management for relog
// using koanf. Configuration is loaded with priority: environment variables >
// project config (.relog.yml) > user config (~/.config/relog/config.yml) >
// defaults. It supports both YAML and legacy JSON formats, with migration
// utilities for transitioning from JSON to YAML.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceEnv     ConfigSource = "env"
)

// LookupConfig controls the author-handle lookup service.
type LookupConfig struct {
	// Enabled turns remote handle resolution on or off.
	Enabled bool `koanf:"enabled"`
	// BaseURL points at an ungh-compatible instance. Empty uses the public one.
	BaseURL string `koanf:"base_url"`
}

// Configuration represents the relog CLI tool configuration
type Configuration struct {
	// TagPrefix is prepended to computed version names (default "v").
	// Can be set via RELOG_TAG_PREFIX env var.
	TagPrefix string `koanf:"tag_prefix"`

	// Remote names the git remote whose URL seeds commit and compare links.
	// Can be set via RELOG_REMOTE env var.
	Remote string `koanf:"remote"`

	// Emoji keeps :code: markers in section titles.
	Emoji bool `koanf:"emoji"`

	// Output selects the default sink: "stdout" or "file" (CHANGELOG.md).
	// Can be set via RELOG_OUTPUT env var.
	Output string `koanf:"output"`

	// Lookup configures author-handle resolution.
	// Environment variable support via RELOG_LOOKUP_* prefix.
	Lookup LookupConfig `koanf:"lookup"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .relog.yml)
	ProjectConfigPath string
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
//
// YAML config paths:
//   - User config: ~/.config/relog/config.yml (XDG compliant)
//   - Project config: .relog.yml
//
// Legacy JSON project config (.relog.json) still loads but triggers a
// migration warning.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if err := loadUserConfig(k); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level YAML config when it exists.
func loadUserConfig(k *koanf.Koanf) error {
	userPath, err := UserConfigPath()
	if err != nil || !fileExists(userPath) {
		return nil
	}
	if err := loadYAMLConfig(k, userPath, "user"); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	return nil
}

// loadProjectConfig loads project-level config (YAML preferred, legacy JSON
// supported). Supports custom path override (for testing). Falls back to
// legacy JSON with a migration warning.
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	projectYAMLPath := ProjectConfigPath()
	if customPath != "" {
		projectYAMLPath = customPath
	}
	legacyPath := LegacyProjectConfigPath()

	projectYAMLExists := fileExists(projectYAMLPath)
	legacyExists := fileExists(legacyPath)

	if projectYAMLExists {
		if err := loadYAMLConfig(k, projectYAMLPath, "project"); err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		if legacyExists && !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Legacy JSON config found at %s (ignored, using %s)\n", legacyPath, projectYAMLPath)
			fmt.Fprintf(warningWriter, "  Run 'relog config migrate' to remove the legacy file.\n\n")
		}
	} else if legacyExists {
		if err := k.Load(file.Provider(legacyPath), json.Parser()); err != nil {
			return fmt.Errorf("failed to load legacy project config %s: %w", legacyPath, err)
		}
		if !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", legacyPath)
			fmt.Fprintf(warningWriter, "  Run 'relog config migrate' to migrate to YAML format.\n\n")
		}
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider("RELOG_", ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys.
// RELOG_TAG_PREFIX -> tag_prefix, RELOG_LOOKUP_BASE_URL -> lookup.base_url.
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "RELOG_"))
	if rest, ok := strings.CutPrefix(key, "lookup_"); ok {
		return "lookup." + rest
	}
	return key
}
