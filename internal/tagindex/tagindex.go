// Package tagindex builds the bidirectional commit<->tag maps the range
// resolver and bump engine consult. Only tags whose names parse as strict
// semantic versions (after an optional "v" or "ver" prefix) participate.
package tagindex

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/relogkit/relog/internal/gitrepo"
)

// Index maps semver-named tags to commits and back. A commit carries at most
// one tag name; when several tags point at the same commit the
// lexicographically smallest name wins, which keeps runs deterministic.
type Index struct {
	commitToTag map[plumbing.Hash]string
	tagToCommit map[string]plumbing.Hash
	ordered     []gitrepo.TagRef
}

// Build lists the repository's tags, filters them to semver names, and
// resolves each to its commit. The incoming listing order (most recent
// first) is preserved; no re-sorting by version number happens here.
func Build(repo *gitrepo.Repository) (*Index, error) {
	tags, err := repo.Tags()
	if err != nil {
		return nil, err
	}

	idx := &Index{
		commitToTag: make(map[plumbing.Hash]string),
		tagToCommit: make(map[string]plumbing.Hash),
	}
	for _, tag := range tags {
		if _, ok := ParseVersion(tag.Name); !ok {
			continue
		}
		idx.ordered = append(idx.ordered, tag)
		idx.tagToCommit[tag.Name] = tag.Hash
		if existing, ok := idx.commitToTag[tag.Hash]; ok && existing <= tag.Name {
			continue
		}
		idx.commitToTag[tag.Hash] = tag.Name
	}
	return idx, nil
}

// ParseVersion parses a tag name as a strict semantic version after
// stripping an optional "v" or "ver" prefix.
func ParseVersion(name string) (*semver.Version, bool) {
	v, err := semver.StrictNewVersion(StripPrefix(name))
	if err != nil {
		return nil, false
	}
	return v, true
}

// StripPrefix removes a leading "ver" or "v" version prefix.
func StripPrefix(name string) string {
	if strings.HasPrefix(name, "ver") {
		return name[3:]
	}
	if strings.HasPrefix(name, "v") {
		return name[1:]
	}
	return name
}

// TagFor returns the tag name associated with a commit, if any.
func (i *Index) TagFor(hash plumbing.Hash) (string, bool) {
	tag, ok := i.commitToTag[hash]
	return tag, ok
}

// CommitFor returns the commit a tag name points to, if the tag exists.
func (i *Index) CommitFor(tag string) (plumbing.Hash, bool) {
	hash, ok := i.tagToCommit[tag]
	return hash, ok
}

// Tags returns the retained tags in listing order, most recent first.
func (i *Index) Tags() []gitrepo.TagRef {
	return i.ordered
}

// Len reports how many tags the index retained.
func (i *Index) Len() int {
	return len(i.ordered)
}
