// Package render turns aggregated segments into Markdown changelog text.
// Rendering is pure and stateless per segment: identical input yields
// byte-identical output.
package render

import (
	"fmt"
	"strings"

	"github.com/relogkit/relog/internal/bump"
	"github.com/relogkit/relog/internal/conventional"
	"github.com/relogkit/relog/internal/segment"
)

// Options controls cosmetic aspects of the rendered Markdown.
type Options struct {
	// BaseURL is the repository browse URL (https://host/owner/repo) used
	// for commit and compare links. Empty disables links entirely.
	BaseURL string
	// Emoji enables the :code: markers in section titles.
	Emoji bool
}

// section maps a classification bucket to its rendered title. The breaking
// pseudo-bucket collects breaking commits from every type.
type section struct {
	key   string
	emoji string
	title string
}

// sections lists the output order. Breaking changes always lead; the rest
// follows the conventional type priority.
var sections = []section{
	{key: "breaking", emoji: ":sparkles:", title: "Breaking Changes"},
	{key: "feat", emoji: ":sparkles:", title: "Features"},
	{key: "fix", emoji: ":bug:", title: "Bug Fixes"},
	{key: "docs", emoji: ":memo:", title: "Documentation"},
	{key: "style", emoji: ":art:", title: "Styles"},
	{key: "refactor", emoji: ":recycle:", title: "Code Refactoring"},
	{key: "perf", emoji: ":zap:", title: "Performance Improvements"},
	{key: "test", emoji: ":rotating_light:", title: "Tests"},
	{key: "build", emoji: ":hammer:", title: "Build"},
	{key: "ci", emoji: ":green_heart:", title: "Continuous Integration"},
	{key: "chore", emoji: ":wrench:", title: "Chores"},
	{key: "revert", emoji: ":rewind:", title: "Reverts"},
	{key: "other", emoji: ":package:", title: "Others"},
}

var contributorsSection = section{emoji: ":busts_in_silhouette:", title: "Contributors"}

func (s section) heading(emoji bool) string {
	if emoji {
		return s.emoji + " " + s.title
	}
	return s.title
}

// Markdown renders one segment plus its computed name pair.
func Markdown(seg *segment.Segment, names bump.Result, opts Options) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", names.ToName)
	if opts.BaseURL != "" {
		fmt.Fprintf(&b, "[compare changes](%s/compare/%s...%s)\n", opts.BaseURL, names.FromName, names.ToName)
	}

	for _, sec := range sections {
		commits := sectionCommits(seg, sec.key)
		if len(commits) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n### %s\n\n", sec.heading(opts.Emoji))
		for _, c := range commits {
			b.WriteString(commitLine(c, opts.BaseURL))
		}
	}

	if len(seg.Contributors) > 0 {
		fmt.Fprintf(&b, "\n### %s\n\n", contributorsSection.heading(opts.Emoji))
		for _, c := range seg.Contributors {
			b.WriteString(contributorLine(c))
		}
	}

	return b.String()
}

// sectionCommits selects the commits a section shows. Breaking commits of
// any type render only under the breaking section; type sections show the
// non-breaking remainder.
func sectionCommits(seg *segment.Segment, key string) []conventional.Commit {
	if key == "breaking" {
		var breaking []conventional.Commit
		for _, sec := range sections[1:] {
			for _, c := range seg.CommitsByType[sec.key] {
				if c.Breaking {
					breaking = append(breaking, c)
				}
			}
		}
		return breaking
	}

	var rest []conventional.Commit
	for _, c := range seg.CommitsByType[key] {
		if !c.Breaking {
			rest = append(rest, c)
		}
	}
	return rest
}

func commitLine(c conventional.Commit, baseURL string) string {
	var b strings.Builder
	b.WriteString("- ")
	if c.Scope != "" {
		fmt.Fprintf(&b, "**%s** ", c.Scope)
	}
	b.WriteString(c.Description)

	// The short-hash link is dropped when the description already carries
	// an issue/PR reference, and when no browse URL is known.
	if baseURL != "" && !conventional.HasIssueRef(c.Description) {
		fmt.Fprintf(&b, " ([%s](%s/commit/%s))", c.ShortHash(), baseURL, c.Hash)
	}

	if by := attribution(c.Authors); by != "" {
		b.WriteString(" - ")
		b.WriteString(by)
	}
	b.WriteString("\n")
	return b.String()
}

// attribution builds the "by X", "by X and Y", "by X, Y, and Z" clause,
// preferring @handle over the display name.
func attribution(authors []conventional.Author) string {
	if len(authors) == 0 {
		return ""
	}

	names := make([]string, len(authors))
	for i, a := range authors {
		if a.Handle != "" {
			names[i] = "@" + a.Handle
		} else {
			names[i] = a.Name
		}
	}

	switch len(names) {
	case 1:
		return "by " + names[0]
	case 2:
		return "by " + names[0] + " and " + names[1]
	default:
		return "by " + strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}

func contributorLine(a conventional.Author) string {
	if a.Handle != "" {
		return fmt.Sprintf("- %s (@%s)\n", a.Name, a.Handle)
	}
	return fmt.Sprintf("- %s <%s>\n", a.Name, a.Mail)
}
