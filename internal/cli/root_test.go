package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	relogerrors "github.com/relogkit/relog/internal/errors"
)

// resetFlags restores package-level flag state so executions stay independent.
func resetFlags() {
	flagPath, flagFrom, flagTo, flagPrefix, flagRemote, flagOutput = ".", "", "", "", "", ""
	flagWrite, flagPlain, flagNoLookup = false, false, false
	initForce = false
	configMigrateDryRun = false
	versionPlain = false
}

// execute runs the command tree with the given args and captures stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// initTestRepo creates a disk repository with one tagged release and two
// unreleased commits, and chdirs into it.
func initTestRepo(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	clock := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	commit := func(name, message string) plumbing.Hash {
		clock = clock.Add(time.Minute)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(message), 0o644))
		_, err := wt.Add(".")
		require.NoError(t, err)
		sig := &object.Signature{Name: "Ada Lovelace", Email: "ada@example.com", When: clock}
		hash, err := wt.Commit(message, &git.CommitOptions{Author: sig, Committer: sig})
		require.NoError(t, err)
		return hash
	}

	first := commit("a.txt", "feat: begin")
	_, err = repo.CreateTag("v1.0.0", first, nil)
	require.NoError(t, err)
	commit("b.txt", "feat(api): add X")
	commit("c.txt", "fix!: change Y")

	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{"https://github.com/acme/widgets.git"},
	})
	require.NoError(t, err)
	return dir
}

func TestCommandRegistration(t *testing.T) {
	expected := []string{"bump", "init", "version", "config"}
	for _, name := range expected {
		found := false
		for _, cmd := range rootCmd.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "%s command should be registered", name)
	}
}

func TestGenerate_WritesChangelogToStdout(t *testing.T) {
	initTestRepo(t)

	out, err := execute(t, "--no-lookup")
	require.NoError(t, err)

	assert.Contains(t, out, "## v2.0.0")
	assert.Contains(t, out, "Breaking Changes")
	assert.Contains(t, out, "- **api** add X")
	assert.Contains(t, out, "[compare changes](https://github.com/acme/widgets/compare/v1.0.0...v2.0.0)")
	assert.Contains(t, out, "Ada Lovelace <ada@example.com>")
}

func TestGenerate_PlainStripsEmoji(t *testing.T) {
	initTestRepo(t)

	out, err := execute(t, "--no-lookup", "--plain")
	require.NoError(t, err)
	assert.NotContains(t, out, ":sparkles:")
	assert.Contains(t, out, "### Features")
}

func TestGenerate_WriteFlagCreatesFile(t *testing.T) {
	dir := initTestRepo(t)

	out, err := execute(t, "--no-lookup", "--write")
	require.NoError(t, err)
	assert.Contains(t, out, "changelog written to")

	data, err := os.ReadFile(filepath.Join(dir, "CHANGELOG.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "## v2.0.0")
}

func TestGenerate_RangeFlags(t *testing.T) {
	initTestRepo(t)

	out, err := execute(t, "--no-lookup", "--from", "v1.0.0", "--to", "HEAD")
	require.NoError(t, err)
	assert.Contains(t, out, "## v2.0.0")
}

func TestGenerate_UnknownRefFails(t *testing.T) {
	initTestRepo(t)

	_, err := execute(t, "--no-lookup", "--from", "v9.9.9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "v9.9.9")
}

func TestBump_PrintsCandidates(t *testing.T) {
	initTestRepo(t)

	out, err := execute(t, "bump")
	require.NoError(t, err)

	assert.Contains(t, out, "bump from v1.0.0")
	assert.Contains(t, out, "major:")
	assert.Contains(t, out, "v2.0.0 (default)")
	assert.Contains(t, out, "minor:")
	assert.Contains(t, out, "patch:")
}

func TestInit_WritesScaffold(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	out, err := execute(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, ".relog.yml")

	data, err := os.ReadFile(".relog.yml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "tag_prefix:")

	// Second run refuses without --force.
	_, err = execute(t, "init")
	require.Error(t, err)

	_, err = execute(t, "init", "--force")
	require.NoError(t, err)
}

func TestConfigSet_PersistsValue(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	out, err := execute(t, "config", "set", "tag_prefix", "ver")
	require.NoError(t, err)
	assert.Contains(t, out, "tag_prefix = ver")

	out, err = execute(t, "config", "set", "lookup.enabled", "false")
	require.NoError(t, err)
	assert.Contains(t, out, "lookup.enabled = false")

	data, err := os.ReadFile(".relog.yml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "tag_prefix: ver")
	assert.Contains(t, string(data), "enabled: false")
}

func TestConfigSet_RejectsUnknownKey(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := execute(t, "config", "set", "nope", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown configuration key")
}

func TestConfigKeys_ListsRegistry(t *testing.T) {
	out, err := execute(t, "config", "keys")
	require.NoError(t, err)
	assert.Contains(t, out, "tag_prefix")
	assert.Contains(t, out, "lookup.base_url")
}

func TestVersion_PlainOutput(t *testing.T) {
	out, err := execute(t, "version", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "relog dev")
	assert.Contains(t, out, "go: go")
}

func TestExitCodeMapping(t *testing.T) {
	tests := map[string]struct {
		category relogerrors.ErrorCategory
		expected int
	}{
		"argument":      {relogerrors.Argument, ExitInvalidArguments},
		"repository":    {relogerrors.Repository, ExitRepositoryError},
		"configuration": {relogerrors.Configuration, ExitConfigError},
		"runtime":       {relogerrors.Runtime, ExitRuntimeError},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, exitCodeFor(tt.category))
		})
	}
}
