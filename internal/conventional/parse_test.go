package conventional

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubject_Valid(t *testing.T) {
	tests := map[string]struct {
		line     string
		expected Subject
	}{
		"plain type": {
			line:     "feat: add user settings",
			expected: Subject{Type: "feat", Description: "add user settings"},
		},
		"type with scope": {
			line:     "fix(parser): handle empty input",
			expected: Subject{Type: "fix", Scope: "parser", Description: "handle empty input"},
		},
		"breaking without scope": {
			line:     "fix!: change config format",
			expected: Subject{Type: "fix", Breaking: true, Description: "change config format"},
		},
		"breaking with scope": {
			line:     "feat(api)!: drop v1 endpoints",
			expected: Subject{Type: "feat", Scope: "api", Breaking: true, Description: "drop v1 endpoints"},
		},
		"emoji code prefix": {
			line:     ":sparkles: feat: shiny thing",
			expected: Subject{Emoji: ":sparkles:", Type: "feat", Description: "shiny thing"},
		},
		"literal emoji prefix": {
			line:     "✨ feat: shiny thing",
			expected: Subject{Emoji: "✨", Type: "feat", Description: "shiny thing"},
		},
		"multiple colons in description": {
			line:     "docs: explain from:to ranges",
			expected: Subject{Type: "docs", Description: "explain from:to ranges"},
		},
		"unknown type token still parses": {
			line:     "wip: half-finished thing",
			expected: Subject{Type: "wip", Description: "half-finished thing"},
		},
		"issue reference in description": {
			line:     "fix(ci): pin runner image (#42)",
			expected: Subject{Type: "fix", Scope: "ci", Description: "pin runner image (#42)"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s, ok := ParseSubject(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.expected, s)
		})
	}
}

func TestParseSubject_Invalid(t *testing.T) {
	tests := map[string]string{
		"no prefix at all":        "oops I forgot the prefix",
		"missing description":     "feat: ",
		"missing space":           "feat:no space",
		"uppercase type":          "Feat: capitalized",
		"empty line":              "",
		"unterminated scope":      "feat(api: missing paren",
		"colon only":              ":",
		"merge commit":            "Merge branch 'main' into dev",
		"bang without colon":      "feat! no colon here",
		"scope without type":      "(api): no type",
		"emoji without structure": ":tada: just celebrating",
	}

	for name, line := range tests {
		t.Run(name, func(t *testing.T) {
			_, ok := ParseSubject(line)
			assert.False(t, ok, "expected %q to fail classification", line)
		})
	}
}

// TestParseSubject_RoundTrip verifies that re-serializing the parsed fields
// reconstructs an equivalent subject, ignoring the emoji marker.
func TestParseSubject_RoundTrip(t *testing.T) {
	lines := []string{
		"feat: add user settings",
		"fix(parser): handle empty input",
		"feat(api)!: drop v1 endpoints",
		"chore!: bump toolchain",
		"docs(readme): document from:to ranges",
	}

	for _, line := range lines {
		s, ok := ParseSubject(line)
		require.True(t, ok)

		rebuilt := s.Type
		if s.Scope != "" {
			rebuilt += "(" + s.Scope + ")"
		}
		if s.Breaking {
			rebuilt += "!"
		}
		rebuilt += ": " + s.Description
		assert.Equal(t, line, rebuilt)
	}
}

func TestParseCoAuthors(t *testing.T) {
	body := "Implements the thing.\n" +
		"\n" +
		"Co-authored-by: Grace Hopper <grace@example.com>\n" +
		"Co-authored-by: Ada Lovelace <ada@example.com>\n" +
		"Signed-off-by: Someone Else <ignored@example.com>\n"

	authors := ParseCoAuthors(body)
	require.Len(t, authors, 2)
	assert.Equal(t, Author{Name: "Grace Hopper", Mail: "grace@example.com"}, authors[0])
	assert.Equal(t, Author{Name: "Ada Lovelace", Mail: "ada@example.com"}, authors[1])
}

func TestClassify(t *testing.T) {
	hash := "0123456789abcdef0123456789abcdef01234567"
	body := "details\n\nCo-authored-by: Grace Hopper <grace@example.com>"

	c, ok := Classify(hash, "feat(core)!: rework pipeline", body, "Ada Lovelace", "ada@example.com")
	require.True(t, ok)

	assert.Equal(t, "feat", c.Type)
	assert.Equal(t, "core", c.Scope)
	assert.True(t, c.Breaking)
	assert.Equal(t, "rework pipeline", c.Description)
	require.Len(t, c.Authors, 2)
	assert.Equal(t, "ada@example.com", c.Authors[0].Mail)
	assert.Equal(t, "grace@example.com", c.Authors[1].Mail)
	assert.Equal(t, "0123456", c.ShortHash())
}

func TestClassify_RejectsNonConventional(t *testing.T) {
	_, ok := Classify("deadbeef", "update stuff", "", "Ada", "ada@example.com")
	assert.False(t, ok)
}

func TestHasIssueRef(t *testing.T) {
	assert.True(t, HasIssueRef("pin runner image (#42)"))
	assert.True(t, HasIssueRef("fixes #7"))
	assert.False(t, HasIssueRef("no reference here"))
	assert.False(t, HasIssueRef("hash # alone"))
}

func TestIsKnownType(t *testing.T) {
	for _, typ := range KnownTypes() {
		assert.True(t, IsKnownType(typ), fmt.Sprintf("%s should be known", typ))
	}
	assert.False(t, IsKnownType("wip"))
	assert.False(t, IsKnownType(""))
}
