package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/relogkit/relog/internal/config"
	"github.com/relogkit/relog/internal/errors"
	"github.com/relogkit/relog/internal/output"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .relog.yml config scaffold",
	Long: `Write a fully commented .relog.yml to the current directory so every
option is visible and documented. An existing file is left untouched
unless --force is given.`,
	Example: `  relog init
  relog init --force`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing .relog.yml")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := config.ProjectConfigPath()
	out := cmd.OutOrStdout()

	if _, err := os.Stat(path); err == nil && !initForce {
		return errors.NewArgumentError(
			fmt.Sprintf("%s already exists", path),
			"Use --force to overwrite it",
			"Or edit the existing file directly",
		)
	}

	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return errors.ConfigWriteError(path, err)
	}
	output.PrintSuccess(out, "wrote "+path)

	if _, err := os.Stat(config.LegacyProjectConfigPath()); err == nil {
		fmt.Fprintf(out, "Found legacy %s; run 'relog config migrate' to fold it in.\n", config.LegacyProjectConfigPath())
	}
	return nil
}
