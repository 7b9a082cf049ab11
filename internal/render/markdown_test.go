package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relogkit/relog/internal/bump"
	"github.com/relogkit/relog/internal/conventional"
	"github.com/relogkit/relog/internal/segment"
)

const (
	hashX = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	hashY = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func sampleSegment() *segment.Segment {
	ada := conventional.Author{Name: "Ada Lovelace", Mail: "ada@example.com"}
	grace := conventional.Author{Name: "Grace Hopper", Mail: "grace@example.com", Handle: "ghopper"}

	return &segment.Segment{
		From:        segment.Boundary{Hash: plumbing.NewHash(hashX), Tag: "v1.1.0"},
		To:          segment.Boundary{Hash: plumbing.NewHash(hashY), Tag: "v2.0.0"},
		HasBreaking: true,
		CommitsByType: map[string][]conventional.Commit{
			"feat": {
				{Hash: hashX, Type: "feat", Scope: "api", Description: "add X", Authors: []conventional.Author{ada}},
			},
			"fix": {
				{Hash: hashY, Type: "fix", Description: "change Y", Breaking: true, Authors: []conventional.Author{grace}},
			},
		},
		Contributors: []conventional.Author{ada, grace},
	}
}

func TestMarkdown_FullSegment(t *testing.T) {
	out := Markdown(sampleSegment(), bump.Result{FromName: "v1.1.0", ToName: "v2.0.0"}, Options{
		BaseURL: "https://github.com/acme/widgets",
		Emoji:   true,
	})

	expected := strings.Join([]string{
		"## v2.0.0",
		"",
		"[compare changes](https://github.com/acme/widgets/compare/v1.1.0...v2.0.0)",
		"",
		"### :sparkles: Breaking Changes",
		"",
		"- change Y ([bbbbbbb](https://github.com/acme/widgets/commit/" + hashY + ")) - by @ghopper",
		"",
		"### :sparkles: Features",
		"",
		"- **api** add X ([aaaaaaa](https://github.com/acme/widgets/commit/" + hashX + ")) - by Ada Lovelace",
		"",
		"### :busts_in_silhouette: Contributors",
		"",
		"- Ada Lovelace <ada@example.com>",
		"- Grace Hopper (@ghopper)",
		"",
	}, "\n")

	assert.Equal(t, expected, out)
}

func TestMarkdown_PlainTitlesStripEmoji(t *testing.T) {
	out := Markdown(sampleSegment(), bump.Result{ToName: "v2.0.0"}, Options{Emoji: false})

	assert.Contains(t, out, "### Breaking Changes")
	assert.Contains(t, out, "### Features")
	assert.Contains(t, out, "### Contributors")
	assert.NotContains(t, out, ":sparkles:")
}

func TestMarkdown_NoBaseURLDropsLinks(t *testing.T) {
	out := Markdown(sampleSegment(), bump.Result{FromName: "v1.1.0", ToName: "v2.0.0"}, Options{Emoji: true})

	assert.NotContains(t, out, "compare changes")
	assert.NotContains(t, out, "commit/")
	assert.Contains(t, out, "- **api** add X - by Ada Lovelace\n")
}

func TestMarkdown_IssueRefSuppressesHashLink(t *testing.T) {
	seg := sampleSegment()
	seg.CommitsByType["feat"][0].Description = "add X (#42)"

	out := Markdown(seg, bump.Result{ToName: "v2.0.0"}, Options{BaseURL: "https://github.com/acme/widgets"})

	assert.Contains(t, out, "- **api** add X (#42) - by Ada Lovelace\n")
	assert.NotContains(t, out, hashX)
}

func TestMarkdown_BreakingCommitRendersOnlyOnce(t *testing.T) {
	out := Markdown(sampleSegment(), bump.Result{ToName: "v2.0.0"}, Options{})

	assert.Equal(t, 1, strings.Count(out, "change Y"))
	assert.NotContains(t, out, "### Bug Fixes")
}

func TestMarkdown_EmptySegmentHasHeadingOnly(t *testing.T) {
	seg := &segment.Segment{
		From:          segment.Boundary{Hash: plumbing.NewHash(hashX)},
		To:            segment.Boundary{Hash: plumbing.NewHash(hashY)},
		CommitsByType: map[string][]conventional.Commit{},
	}

	out := Markdown(seg, bump.Result{FromName: "aaaaaaa", ToName: "v0.0.1"}, Options{Emoji: true})
	assert.Equal(t, "## v0.0.1\n\n", out)
}

func TestMarkdown_SectionOrder(t *testing.T) {
	seg := sampleSegment()
	seg.CommitsByType["chore"] = []conventional.Commit{
		{Hash: hashX, Type: "chore", Description: "tidy deps"},
	}

	out := Markdown(seg, bump.Result{ToName: "v2.0.0"}, Options{})

	breaking := strings.Index(out, "Breaking Changes")
	features := strings.Index(out, "Features")
	chores := strings.Index(out, "Chores")
	contributors := strings.Index(out, "Contributors")
	require.True(t, breaking >= 0 && features >= 0 && chores >= 0 && contributors >= 0)
	assert.Less(t, breaking, features)
	assert.Less(t, features, chores)
	assert.Less(t, chores, contributors)
}

func TestAttribution(t *testing.T) {
	ada := conventional.Author{Name: "Ada Lovelace"}
	grace := conventional.Author{Name: "Grace Hopper", Handle: "ghopper"}
	alan := conventional.Author{Name: "Alan Turing"}

	tests := map[string]struct {
		authors  []conventional.Author
		expected string
	}{
		"none":           {nil, ""},
		"single":         {[]conventional.Author{ada}, "by Ada Lovelace"},
		"pair":           {[]conventional.Author{ada, grace}, "by Ada Lovelace and @ghopper"},
		"three or more":  {[]conventional.Author{ada, grace, alan}, "by Ada Lovelace, @ghopper, and Alan Turing"},
		"handleheavy":    {[]conventional.Author{grace}, "by @ghopper"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, attribution(tt.authors))
		})
	}
}

func TestWriteFile_CreatesWhenMissing(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteFile(dir, "## v1.0.0\n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ChangelogFileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "## v1.0.0\n", string(data))
}

func TestWriteFile_PrependsToExisting(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, ChangelogFileName)
	require.NoError(t, os.WriteFile(existing, []byte("## v1.0.0\nold\n"), 0o644))

	_, err := WriteFile(dir, "## v2.0.0\nnew\n")
	require.NoError(t, err)

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "## v2.0.0\nnew\n\n## v1.0.0\nold\n", string(data))
}
