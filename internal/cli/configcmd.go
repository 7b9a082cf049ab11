package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/relogkit/relog/internal/config"
	"github.com/relogkit/relog/internal/errors"
	"github.com/relogkit/relog/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage relog configuration",
	Long: `Manage relog configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (RELOG_*)
  2. Project config (.relog.yml)
  3. User config (~/.config/relog/config.yml)
  4. Built-in defaults`,
	Example: `  # List all known keys
  relog config keys

  # Set a value in .relog.yml
  relog config set tag_prefix ver

  # Migrate a legacy .relog.json
  relog config migrate`,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List known configuration keys",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()

		paths := make([]string, 0, len(config.KnownKeys))
		for path := range config.KnownKeys {
			paths = append(paths, path)
		}
		sort.Strings(paths)

		for _, path := range paths {
			schema := config.KnownKeys[path]
			fmt.Fprintf(out, "%-18s %-6s default=%-8v %s\n", schema.Path, schema.Type, schema.Default, schema.Description)
		}
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a value in the project config",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configMigrateDryRun bool

var configMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate a legacy .relog.json to .relog.yml",
	Args:  cobra.NoArgs,
	RunE:  runConfigMigrate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configKeysCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configMigrateCmd)
	configMigrateCmd.Flags().BoolVar(&configMigrateDryRun, "dry-run", false, "Report the planned migration without writing")
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	parsed, err := config.ValidateValue(key, value)
	if err != nil {
		return errors.NewArgumentError(err.Error(),
			"List valid keys with: relog config keys",
		)
	}

	path := config.ProjectConfigPath()
	values := map[string]interface{}{}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &values); err != nil {
			return errors.ConfigParseError(path, err)
		}
	}

	setNested(values, strings.Split(key, "."), parsed.Parsed)

	data, err := yaml.Marshal(values)
	if err != nil {
		return errors.ConfigWriteError(path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.ConfigWriteError(path, err)
	}

	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("%s = %v", key, parsed.Parsed))
	return nil
}

// setNested writes a value into a nested map following the dotted key path,
// creating intermediate maps as needed.
func setNested(values map[string]interface{}, path []string, value interface{}) {
	if len(path) == 1 {
		values[path[0]] = value
		return
	}
	child, ok := values[path[0]].(map[string]interface{})
	if !ok {
		child = map[string]interface{}{}
		values[path[0]] = child
	}
	setNested(child, path[1:], value)
}

func runConfigMigrate(cmd *cobra.Command, args []string) error {
	result, err := config.MigrateProjectConfig(configMigrateDryRun)
	if err != nil {
		return errors.Wrap(err, errors.Configuration)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, result.Message)

	if result.Success && !result.DryRun {
		if err := config.RemoveLegacyConfig(result.SourcePath, false); err != nil {
			return errors.Wrap(err, errors.Runtime)
		}
		fmt.Fprintf(out, "Legacy config backed up to %s.bak\n", result.SourcePath)
	}
	return nil
}
