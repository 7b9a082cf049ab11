// Package cli implements the relog command tree. Commands stay thin: flag
// parsing and output formatting here, everything else in internal/engine.
package cli

import (
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/go-git/go-git/v5"
	"github.com/spf13/cobra"

	"github.com/relogkit/relog/internal/config"
	"github.com/relogkit/relog/internal/engine"
	"github.com/relogkit/relog/internal/errors"
	"github.com/relogkit/relog/internal/gitrepo"
	"github.com/relogkit/relog/internal/identity"
	"github.com/relogkit/relog/internal/output"
	"github.com/relogkit/relog/internal/render"
	"github.com/relogkit/relog/internal/segment"
)

var rootCmd = &cobra.Command{
	Use:   "relog [path]",
	Short: "Changelog generator for conventional commits",
	Long: `relog reads a git commit range, classifies conventional commits,
splits the range into tag-bounded segments, and renders a Markdown
changelog with version bump suggestions and contributor credits.

Without --from, the range starts at the most recent tagged commit
reachable from --to (HEAD by default), or at the root commit when the
repository carries no semver tag yet.`,
	Example: `  # Changelog for everything since the last tag
  relog

  # Changelog between two tags
  relog --from v1.0.0 --to v1.1.0

  # Prepend the result to CHANGELOG.md
  relog --write`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runGenerate,
}

var (
	flagPath   string
	flagFrom   string
	flagTo     string
	flagPrefix string
	flagRemote string
	flagOutput string

	flagWrite    bool
	flagPlain    bool
	flagNoLookup bool
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagPath, "path", ".", "Repository path (any directory inside it)")
	pf.StringVarP(&flagFrom, "from", "f", "", "Older range endpoint: tag, branch, or hash")
	pf.StringVarP(&flagTo, "to", "t", "", "Newer range endpoint (default HEAD)")
	pf.StringVarP(&flagPrefix, "prefix", "p", "", "Prefix for computed version names (default from config)")
	pf.StringVarP(&flagRemote, "remote", "r", "", "Remote for commit and compare links (default from config)")

	rootCmd.Flags().BoolVarP(&flagWrite, "write", "w", false, "Prepend the changelog to CHANGELOG.md")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Sink: stdout or file (default from config)")
	rootCmd.Flags().BoolVar(&flagPlain, "plain", false, "Section titles without emoji markers")
	rootCmd.Flags().BoolVar(&flagNoLookup, "no-lookup", false, "Skip author handle lookups")
}

// Execute runs the root command and returns a process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		cliErr := errors.AsCLIError(err)
		if cliErr == nil {
			cliErr = errors.Wrap(err, errors.Runtime)
		}
		errors.PrintError(cliErr)
		return exitCodeFor(cliErr.Category)
	}
	return ExitSuccess
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := engineOptions(cmd, cfg)
	if len(args) == 1 {
		opts.Path = args[0]
	}

	var spin *spinner.Spinner
	if output.IsTerminal() {
		spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		spin.Suffix = " reading history..."
		spin.Start()
	}
	report, err := engine.Run(cmd.Context(), opts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return describeRunError(err)
	}

	sink := cfg.Output
	if cmd.Flags().Changed("output") {
		sink = flagOutput
	}
	if flagWrite {
		sink = "file"
	}

	if sink == "file" {
		path, err := render.WriteFile(opts.Path, report.Markdown)
		if err != nil {
			return errors.ChangelogWriteError(err)
		}
		output.PrintSuccess(cmd.OutOrStdout(), "changelog written to "+path)
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), report.Markdown)
	return nil
}

// loadConfig loads the layered configuration and maps failures onto CLI
// error categories.
func loadConfig() (*config.Configuration, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, errors.Wrap(err, errors.Configuration,
			"Check .relog.yml for syntax errors",
			"Reset to defaults with: relog init --force",
		)
	}
	return cfg, nil
}

// engineOptions merges configuration with explicit flags. A flag the user
// actually set wins over the config file.
func engineOptions(cmd *cobra.Command, cfg *config.Configuration) engine.Options {
	opts := engine.Options{
		Path:      flagPath,
		From:      flagFrom,
		To:        flagTo,
		TagPrefix: cfg.TagPrefix,
		Remote:    cfg.Remote,
		Emoji:     cfg.Emoji && !flagPlain,
	}
	if cmd.Flags().Changed("prefix") {
		opts.TagPrefix = flagPrefix
	}
	if cmd.Flags().Changed("remote") {
		opts.Remote = flagRemote
	}
	if cfg.Lookup.Enabled && !flagNoLookup {
		opts.Lookup = identity.NewHTTPLookup(cfg.Lookup.BaseURL)
	}
	return opts
}

// describeRunError translates engine sentinels into structured CLI errors
// with remediation steps.
func describeRunError(err error) error {
	switch {
	case stderrors.Is(err, gitrepo.ErrEmptyRepository):
		return errors.RepositoryEmpty()
	case stderrors.Is(err, gitrepo.ErrNotClean):
		return errors.RepositoryNotClean()
	case stderrors.Is(err, gitrepo.ErrUntracked):
		return errors.RepositoryUntracked()
	case stderrors.Is(err, gitrepo.ErrRefNotFound):
		return errors.NewArgumentError(err.Error(),
			"Check existing tags with: git tag --list",
			"Any tag name, branch, or commit hash works",
		)
	case stderrors.Is(err, segment.ErrEmptyRange):
		return errors.EmptyRange()
	default:
		if isNotARepository(err) {
			return errors.NotARepository(flagPath)
		}
		return errors.Wrap(err, errors.Runtime)
	}
}

func isNotARepository(err error) bool {
	return err != nil && stderrors.Is(err, git.ErrRepositoryNotExists)
}
