package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# Relog Configuration
# Project-level settings for changelog generation.

# Tag settings
tag_prefix: v             # Prefix for computed version names: v | ver | ""

# Link settings
remote: origin            # Remote whose URL seeds commit and compare links

# Rendering settings
emoji: true               # Keep :code: markers in section titles
output: stdout            # Default sink: stdout | file (prepends CHANGELOG.md)

# Author handle lookup
lookup:
  enabled: true           # Resolve author mails to public handles
  base_url: ""            # Custom ungh-compatible instance (empty = public)
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"tag_prefix": "v",
		"remote":     "origin",
		"emoji":      true,
		// output: where the rendered changelog goes by default. The --write
		// flag flips a stdout run to file for a single invocation.
		"output": "stdout",
		"lookup": map[string]interface{}{
			"enabled":  true,
			"base_url": "",
		},
	}
}
