package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relogkit/relog/internal/bump"
	"github.com/relogkit/relog/internal/engine"
	"github.com/relogkit/relog/internal/identity"
	"github.com/relogkit/relog/internal/output"
)

var bumpCmd = &cobra.Command{
	Use:   "bump [path]",
	Short: "Show version bump candidates for the newest segment",
	Long: `Compute the three possible next versions (major, minor, patch) for
the newest segment of the range and mark the one the commit contents
suggest: any breaking change selects major, a feature selects minor,
anything else selects patch.

The selection is advisory only; relog never creates tags.`,
	Example: `  # Candidates for everything since the last tag
  relog bump

  # Candidates relative to an explicit lower bound
  relog bump --from v1.0.0`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBump,
}

func init() {
	rootCmd.AddCommand(bumpCmd)
}

func runBump(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := engineOptions(cmd, cfg)
	if len(args) == 1 {
		opts.Path = args[0]
	}
	// Bump output never needs author handles.
	opts.Lookup = identity.NopLookup{}

	report, err := engine.Run(cmd.Context(), opts)
	if err != nil {
		return describeRunError(err)
	}

	names := report.Latest().Names
	out := cmd.OutOrStdout()

	if names.Candidates == nil {
		fmt.Fprintf(out, "%s is already tagged\n", names.ToName)
		return nil
	}

	fmt.Fprintf(out, "bump from %s:\n", names.FromName)
	for _, level := range []bump.Level{bump.Major, bump.Minor, bump.Patch} {
		version := opts.TagPrefix + names.Candidates[level].String()
		output.PrintBumpLine(out, string(level), version, level == names.Default)
	}
	return nil
}
