package conventional

// Author identifies a contributor. Identity is defined by Mail: two Author
// values with the same mail are the same person even when the display name
// differs between commits.
type Author struct {
	Name   string
	Mail   string
	Handle string // public username, empty when unknown
}

// Commit is the classified form of one git commit. It is built once by the
// classifier and never mutated afterwards.
type Commit struct {
	Hash        string // full hex object id
	Emoji       string // leading glyph or :code:, cosmetic only
	Type        string // lower-case token, e.g. "feat", "fix"
	Scope       string // free text, empty when absent
	Description string
	Breaking    bool
	Authors     []Author // primary author first, co-authors appended
}

// ShortHash returns the commit id truncated to 7 hex characters.
func (c Commit) ShortHash() string {
	if len(c.Hash) < 7 {
		return c.Hash
	}
	return c.Hash[:7]
}

// KnownTypes lists the classification buckets the renderer understands, in
// rendering priority order. Subjects with any other lower-case token still
// classify but are routed to the "other" bucket.
func KnownTypes() []string {
	return []string{
		"feat", "fix", "docs", "style", "refactor", "perf",
		"test", "build", "ci", "chore", "revert", "other",
	}
}

// IsKnownType reports whether t is one of the fixed rendering buckets.
func IsKnownType(t string) bool {
	for _, k := range KnownTypes() {
		if t == k {
			return true
		}
	}
	return false
}
