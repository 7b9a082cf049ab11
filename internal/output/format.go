// Package output provides terminal output formatting utilities for the relog
// CLI. This package is designed to have minimal dependencies to avoid import
// cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// IsTerminal reports whether stdout is attached to a terminal. Pipes get
// plain output with no spinner.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// PrintRule prints a dim separator line labelled with the program name,
// used to set the rendered changelog apart from status output.
func PrintRule(out io.Writer) {
	termWidth := GetTerminalWidth()
	magenta := color.New(color.FgMagenta, color.Faint).SprintFunc()

	label := " relog "
	lineLen := (termWidth - len(label)) / 2
	if lineLen < 3 {
		lineLen = 3
	}

	line := strings.Repeat("─", lineLen)
	fmt.Fprintf(out, "\n%s%s%s\n", magenta(line), magenta(label), magenta(line))
}

// PrintSuccess prints a colored success message, green checkmark plus cyan
// detail text.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), cyan(message))
}

// PrintBumpLine prints one version candidate, highlighting the default.
func PrintBumpLine(out io.Writer, level, version string, isDefault bool) {
	if isDefault {
		bold := color.New(color.FgGreen, color.Bold).SprintFunc()
		fmt.Fprintf(out, "  %s %s (default)\n", bold(level+":"), bold(version))
		return
	}
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "  %s %s\n", dim(level+":"), dim(version))
}
