// Package conventional classifies commit messages against the conventional
// commit grammar: [emoji]? <type>[(<scope>)]?[!]: <description>.
//
// Subject parsing is a hand-written scanner rather than a regular expression
// so that type/scope/breaking/description extraction is a pure function with
// unit-testable edge cases (missing scope, missing emoji, multiple colons in
// the description).
package conventional

import (
	"regexp"
	"strings"
)

// Subject holds the fields extracted from a conventional commit subject line.
type Subject struct {
	Emoji       string
	Type        string
	Scope       string
	Description string
	Breaking    bool
}

// coAuthorPattern matches "Co-authored-by: Name <mail>" trailer lines.
var coAuthorPattern = regexp.MustCompile(`^Co-authored-by: (.+) <(.+)>`)

// issueRefPattern matches issue/PR references like "#123" inside a description.
var issueRefPattern = regexp.MustCompile(`#\d+`)

// ParseSubject parses the first line of a commit message. It returns false
// when the line does not follow the conventional commit grammar; such commits
// are excluded from classification but never abort a run.
func ParseSubject(line string) (Subject, bool) {
	var s Subject

	rest := line
	s.Emoji, rest = scanEmoji(rest)
	rest = strings.TrimLeft(rest, " ")

	s.Type, rest = scanType(rest)
	if s.Type == "" {
		return Subject{}, false
	}

	var ok bool
	s.Scope, rest, ok = scanScope(rest)
	if !ok {
		return Subject{}, false
	}

	if strings.HasPrefix(rest, "!") {
		s.Breaking = true
		rest = rest[1:]
	}

	// The grammar requires a colon followed by a single space before the
	// description, and the description must be non-empty.
	if !strings.HasPrefix(rest, ": ") {
		return Subject{}, false
	}
	s.Description = rest[2:]
	if s.Description == "" {
		return Subject{}, false
	}

	return s, true
}

// scanEmoji strips an optional leading emoji marker: either a ":code:" form
// or a literal emoji rune. The marker carries no semantic meaning.
func scanEmoji(s string) (emoji, rest string) {
	if strings.HasPrefix(s, ":") {
		if end := strings.Index(s[1:], ":"); end >= 0 {
			return s[:end+2], s[end+2:]
		}
		return "", s
	}
	for i, r := range s {
		if i > 0 {
			return s[:i], s[i:]
		}
		if !isEmojiRune(r) {
			return "", s
		}
	}
	return "", s
}

// isEmojiRune reports whether r falls in the emoji blocks the grammar
// accepts as a leading marker.
func isEmojiRune(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1F6FF:
		return true
	case r >= 0x1F900 && r <= 0x1FAFF:
		return true
	case r >= 0x2600 && r <= 0x2B55:
		return true
	}
	return false
}

// scanType consumes a run of lower-case letters.
func scanType(s string) (typ, rest string) {
	i := 0
	for i < len(s) && s[i] >= 'a' && s[i] <= 'z' {
		i++
	}
	return s[:i], s[i:]
}

// scanScope consumes an optional parenthesized scope. Returns ok=false when
// an opening parenthesis is never closed.
func scanScope(s string) (scope, rest string, ok bool) {
	if !strings.HasPrefix(s, "(") {
		return "", s, true
	}
	end := strings.Index(s, ")")
	if end < 0 {
		return "", "", false
	}
	return s[1:end], s[end+1:], true
}

// ParseCoAuthors scans a commit body for Co-authored-by trailer lines and
// returns the referenced authors in the order encountered.
func ParseCoAuthors(body string) []Author {
	var authors []Author
	for _, line := range strings.Split(body, "\n") {
		m := coAuthorPattern.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		authors = append(authors, Author{Name: m[1], Mail: m[2]})
	}
	return authors
}

// HasIssueRef reports whether the description already carries an issue or PR
// reference such as "(#42)". The renderer suppresses the short-hash link for
// those commits to avoid duplicate noise.
func HasIssueRef(description string) bool {
	return issueRefPattern.MatchString(description)
}

// Classify builds a Commit record from raw commit metadata. The primary
// author comes first; co-authors found in the body are appended in order.
// Returns false when the subject does not follow the grammar.
func Classify(hash, subject, body, authorName, authorMail string) (Commit, bool) {
	s, ok := ParseSubject(subject)
	if !ok {
		return Commit{}, false
	}

	authors := []Author{{Name: authorName, Mail: authorMail}}
	authors = append(authors, ParseCoAuthors(body)...)

	return Commit{
		Hash:        hash,
		Emoji:       s.Emoji,
		Type:        s.Type,
		Scope:       s.Scope,
		Description: s.Description,
		Breaking:    s.Breaking,
		Authors:     authors,
	}, true
}
