// Package segment splits a requested commit range into tag-bounded segments
// and aggregates each segment's classified commits and contributors. A
// segment is the unit the renderer turns into one changelog entry.
package segment

import (
	"errors"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/relogkit/relog/internal/conventional"
)

// ErrEmptyRange indicates from and to resolve to the same commit.
var ErrEmptyRange = errors.New("no commits between from and to")

// Boundary marks the start or end of a segment: a commit id, tag-named when
// an existing tag points at it. Boundaries are plain values; segments never
// share live graph handles.
type Boundary struct {
	Hash plumbing.Hash
	Tag  string // empty when the commit carries no semver tag
}

// Tagged reports whether the boundary corresponds to an existing tag.
func (b Boundary) Tagged() bool {
	return b.Tag != ""
}

// Name returns the boundary's display name: its tag, or the commit id
// truncated to 7 hex characters.
func (b Boundary) Name() string {
	if b.Tag != "" {
		return b.Tag
	}
	s := b.Hash.String()
	if len(s) > 7 {
		s = s[:7]
	}
	return s
}

// Segment is one contiguous, tag-bounded slice of history. It is fully built
// by Aggregate before anything consumes it and never mutated afterwards.
type Segment struct {
	From Boundary // older endpoint, exclusive
	To   Boundary // newer endpoint, inclusive

	// HasBreaking is true once any contained commit is marked breaking.
	HasBreaking bool

	// CommitsByType buckets classified commits by type token in traversal
	// order. Unknown type tokens are folded into the "other" bucket so the
	// key set stays closed.
	CommitsByType map[string][]conventional.Commit

	// Contributors holds each distinct author once, keyed by mail,
	// first-seen order preserved for deterministic rendering.
	Contributors []conventional.Author

	byMail map[string]int
}

func newSegment(from, to Boundary) *Segment {
	return &Segment{
		From:          from,
		To:            to,
		CommitsByType: make(map[string][]conventional.Commit),
		byMail:        make(map[string]int),
	}
}

// addContributor inserts an author keyed by mail. The first-seen name wins;
// an empty handle is back-filled when a later sighting carries one.
func (s *Segment) addContributor(a conventional.Author) {
	if i, ok := s.byMail[a.Mail]; ok {
		if s.Contributors[i].Handle == "" && a.Handle != "" {
			s.Contributors[i].Handle = a.Handle
		}
		return
	}
	s.byMail[a.Mail] = len(s.Contributors)
	s.Contributors = append(s.Contributors, a)
}

// CommitCount returns the number of classified commits across all buckets.
func (s *Segment) CommitCount() int {
	n := 0
	for _, commits := range s.CommitsByType {
		n += len(commits)
	}
	return n
}

// Pairs turns a boundary list into (older, newer) pairs, newest segment
// first: segment i spans boundaries[i+1] -> boundaries[i].
func Pairs(boundaries []Boundary) [][2]Boundary {
	var pairs [][2]Boundary
	for i := 0; i+1 < len(boundaries); i++ {
		pairs = append(pairs, [2]Boundary{boundaries[i+1], boundaries[i]})
	}
	return pairs
}
