package cli

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/relogkit/relog/internal/build"
)

var versionPlain bool

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for relog",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if versionPlain {
			fmt.Fprintf(out, "relog %s\n", build.Version)
			fmt.Fprintf(out, "commit: %s\n", truncateCommit(build.Commit))
			fmt.Fprintf(out, "built: %s\n", build.BuildDate)
			fmt.Fprintf(out, "go: %s\n", runtime.Version())
			fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return
		}

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		dim := color.New(color.Faint).SprintFunc()
		fmt.Fprintf(out, "%s %s %s\n", cyan("relog"), build.Version,
			dim(fmt.Sprintf("(%s, %s, %s/%s)", truncateCommit(build.Commit), build.BuildDate, runtime.GOOS, runtime.GOARCH)))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionPlain, "plain", false, "Plain output without formatting")
}

// truncateCommit shortens commit hash if it's too long
func truncateCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
