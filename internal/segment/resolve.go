package segment

import (
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/relogkit/relog/internal/gitrepo"
	"github.com/relogkit/relog/internal/tagindex"
)

// ResolveBoundaries resolves a from/to endpoint pair into the ordered
// boundary list [to, ...tagged commits hit during the walk..., from].
// Consecutive pairs define segments (see Pairs).
//
// An empty from means "the most recent tagged commit reachable from to, or
// the root commit when no tag exists". An empty to means HEAD.
func ResolveBoundaries(repo *gitrepo.Repository, idx *tagindex.Index, from, to string) ([]Boundary, error) {
	toHash, err := resolveTo(repo, to)
	if err != nil {
		return nil, err
	}

	fromHash, err := resolveFrom(repo, idx, from, toHash)
	if err != nil {
		return nil, err
	}

	if fromHash == toHash {
		return nil, ErrEmptyRange
	}

	boundaries := []Boundary{makeBoundary(idx, toHash)}
	err = repo.WalkRange(fromHash, toHash, func(c gitrepo.Commit) error {
		hash := plumbing.NewHash(c.Hash)
		if hash == toHash {
			return nil
		}
		if _, ok := idx.TagFor(hash); ok {
			boundaries = append(boundaries, makeBoundary(idx, hash))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	boundaries = append(boundaries, makeBoundary(idx, fromHash))
	return boundaries, nil
}

func makeBoundary(idx *tagindex.Index, hash plumbing.Hash) Boundary {
	tag, _ := idx.TagFor(hash)
	return Boundary{Hash: hash, Tag: tag}
}

func resolveTo(repo *gitrepo.Repository, to string) (plumbing.Hash, error) {
	if to == "" || to == "HEAD" {
		return repo.Head()
	}
	return repo.ResolveRef(to)
}

// resolveFrom picks the lower endpoint. An explicit identifier resolves as a
// tag or commit-ish. Otherwise the history below to is scanned for the first
// tagged commit; with no tag anywhere the root commit becomes the endpoint.
func resolveFrom(repo *gitrepo.Repository, idx *tagindex.Index, from string, toHash plumbing.Hash) (plumbing.Hash, error) {
	if from != "" {
		return repo.ResolveRef(from)
	}

	var result plumbing.Hash
	err := repo.WalkRange(plumbing.ZeroHash, toHash, func(c gitrepo.Commit) error {
		hash := plumbing.NewHash(c.Hash)
		result = hash // trails behind; ends at the root when nothing is tagged
		if _, ok := idx.TagFor(hash); ok {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return result, nil
}
