package errors

import "fmt"

// Common error messages for the relog CLI.
// These templates ensure consistent, actionable error messages.

// NotARepository creates an error when the working directory is not inside
// a git repository.
func NotARepository(path string) *CLIError {
	return NewRepositoryError(
		fmt.Sprintf("no git repository found at %s", path),
		"Run relog from inside a git repository",
		"Or point it at one with: relog --path <dir>",
	)
}

// RepositoryEmpty creates an error for a repository with no commits.
func RepositoryEmpty() *CLIError {
	return NewRepositoryError(
		"the repository has no commits",
		"Create an initial commit before generating a changelog",
	)
}

// RepositoryNotClean creates an error for uncommitted changes.
func RepositoryNotClean() *CLIError {
	return NewRepositoryError(
		"the repository has uncommitted changes",
		"Commit or stash your changes first",
		"Check what changed with: git status",
	)
}

// RepositoryUntracked creates an error for untracked files in the worktree.
func RepositoryUntracked() *CLIError {
	return NewRepositoryError(
		"the repository has untracked files",
		"Commit, stash, or ignore the untracked files",
		"Check what is untracked with: git status",
	)
}

// RefNotFound creates an error for an unresolvable from/to identifier.
func RefNotFound(name string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("cannot resolve %q to a commit", name),
		"relog --from <tag|hash> --to <tag|hash>",
		"Check existing tags with: git tag --list",
		"Any tag name, branch, or commit hash works",
	)
}

// EmptyRange creates an error when from and to point at the same commit.
func EmptyRange() *CLIError {
	return NewArgumentError(
		"the requested range contains no commits",
		"Pick a --from older than --to",
		"Without --from the range starts at the latest tag; tag-then-run yields nothing new",
	)
}

// ConfigParseError creates an error for an invalid config file.
func ConfigParseError(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("failed to parse config file: %s", path),
		"Check the file for YAML syntax errors",
		"Reset to defaults with: relog init --force",
	)
}

// ConfigWriteError creates an error when the config file cannot be written.
func ConfigWriteError(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("cannot write config file: %s", path),
		"Check file permissions: ls -la "+path,
		"Ensure the parent directory exists and is writable",
	)
}

// ChangelogWriteError creates an error when CHANGELOG.md cannot be written.
func ChangelogWriteError(err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		"cannot write CHANGELOG.md",
		"Check that the repository directory is writable",
		"Or drop --write and redirect stdout instead",
	)
}
