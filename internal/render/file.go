package render

import (
	"fmt"
	"os"
	"path/filepath"
)

// ChangelogFileName is the conventional file the --write flag targets.
const ChangelogFileName = "CHANGELOG.md"

// WriteFile persists rendered changelog text to dir/CHANGELOG.md. A fresh
// run prepends to an existing file so the newest release stays on top;
// a missing file is created with the content alone.
func WriteFile(dir, content string) (string, error) {
	path := filepath.Join(dir, ChangelogFileName)

	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		content = content + "\n" + string(existing)
	case os.IsNotExist(err):
		// first run, nothing to preserve
	default:
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
