// Package gitrepo is the repository gateway for relog. It wraps go-git behind
// the narrow surface the engine needs: opening a repository with cleanliness
// checks, resolving refs, listing semver-candidate tags, walking commit
// ranges, and reading commit metadata. No operation mutates the repository.
package gitrepo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

var (
	// ErrEmptyRepository indicates the repository has no commits.
	ErrEmptyRepository = errors.New("the repository is empty")
	// ErrNotClean indicates uncommitted changes in the worktree or index.
	ErrNotClean = errors.New("the repository is not clean")
	// ErrUntracked indicates untracked files in the worktree.
	ErrUntracked = errors.New("the repository has untracked files")
	// ErrRefNotFound indicates a from/to identifier that resolves to nothing.
	ErrRefNotFound = errors.New("reference not found")
)

// Commit carries the raw commit metadata the classifier consumes.
type Commit struct {
	Hash          string
	Subject       string
	Body          string
	AuthorName    string
	AuthorMail    string
	CommitterName string
	CommitterMail string
}

// TagRef is one tag reference and the commit it points to, annotated tags
// already peeled.
type TagRef struct {
	Name string
	Hash plumbing.Hash
}

// Repository is a read-only handle on a git repository.
type Repository struct {
	repo *git.Repository
}

// Open opens the repository at path (or any parent directory containing a
// .git) and verifies it is usable: non-empty, no staged or unstaged changes,
// no untracked files. These checks run before any traversal so a run never
// partially renders against a dirty tree.
func Open(path string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	r := &Repository{repo: repo}
	if err := r.verifyUsable(); err != nil {
		return nil, err
	}
	return r, nil
}

// New wraps an already-open go-git repository without worktree checks.
// Intended for callers that construct repositories programmatically.
func New(repo *git.Repository) *Repository {
	return &Repository{repo: repo}
}

func (r *Repository) verifyUsable() error {
	if _, err := r.repo.Head(); err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return ErrEmptyRepository
		}
		return fmt.Errorf("reading HEAD: %w", err)
	}

	worktree, err := r.repo.Worktree()
	if err != nil {
		if errors.Is(err, git.ErrIsBareRepository) {
			return nil
		}
		return fmt.Errorf("getting worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return fmt.Errorf("reading worktree status: %w", err)
	}

	for _, s := range status {
		if s.Worktree == git.Untracked || s.Staging == git.Untracked {
			return ErrUntracked
		}
	}
	if !status.IsClean() {
		return ErrNotClean
	}
	return nil
}

// Head returns the commit id HEAD points to.
func (r *Repository) Head() (plumbing.Hash, error) {
	head, err := r.repo.Head()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("reading HEAD: %w", err)
	}
	return head.Hash(), nil
}

// ResolveRef resolves a tag name, branch name, hash, or revision expression
// to a commit id. Annotated tags are peeled to their target commit.
func (r *Repository) ResolveRef(name string) (plumbing.Hash, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(name))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("%w: %s", ErrRefNotFound, name)
	}
	return r.peel(*hash)
}

// peel follows an annotated tag object to the commit it tags. Plain commit
// hashes pass through unchanged.
func (r *Repository) peel(hash plumbing.Hash) (plumbing.Hash, error) {
	tag, err := r.repo.TagObject(hash)
	if err == nil {
		commit, err := tag.Commit()
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("peeling tag %s: %w", tag.Name, err)
		}
		return commit.Hash, nil
	}
	if errors.Is(err, plumbing.ErrObjectNotFound) {
		return hash, nil
	}
	return plumbing.ZeroHash, fmt.Errorf("inspecting object %s: %w", hash, err)
}

// Tags lists every tag reference most-recent-first, as given by the reversed
// ref listing. Annotated tags are peeled; tags that fail to resolve to a
// commit are silently skipped.
func (r *Repository) Tags() ([]TagRef, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var tags []TagRef
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		hash, err := r.peel(ref.Hash())
		if err != nil {
			return nil
		}
		tags = append(tags, TagRef{Name: ref.Name().Short(), Hash: hash})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	for i, j := 0, len(tags)-1; i < j; i, j = i+1, j-1 {
		tags[i], tags[j] = tags[j], tags[i]
	}
	return tags, nil
}

// Commit reads the metadata of a single commit.
func (r *Repository) Commit(hash plumbing.Hash) (Commit, error) {
	c, err := r.repo.CommitObject(hash)
	if err != nil {
		return Commit{}, fmt.Errorf("reading commit %s: %w", hash, err)
	}
	return toCommit(c), nil
}

func toCommit(c *object.Commit) Commit {
	subject, body := splitMessage(c.Message)
	return Commit{
		Hash:          c.Hash.String(),
		Subject:       subject,
		Body:          body,
		AuthorName:    c.Author.Name,
		AuthorMail:    c.Author.Email,
		CommitterName: c.Committer.Name,
		CommitterMail: c.Committer.Email,
	}
}

// splitMessage separates a commit message into its subject line and body.
func splitMessage(message string) (subject, body string) {
	parts := strings.SplitN(message, "\n", 2)
	subject = strings.TrimRight(parts[0], "\r")
	if len(parts) == 2 {
		body = strings.TrimLeft(parts[1], "\n")
	}
	return subject, body
}

// WalkRange walks commits reachable from newer down to the older sentinel,
// reverse-chronological, newer inclusive and older exclusive. A zero older
// hash walks all the way to the root. The callback may return an error to
// abort the walk; that error propagates to the caller.
func (r *Repository) WalkRange(older, newer plumbing.Hash, fn func(Commit) error) error {
	iter, err := r.repo.Log(&git.LogOptions{
		From:  newer,
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return fmt.Errorf("walking history from %s: %w", newer, err)
	}
	defer iter.Close()

	err = iter.ForEach(func(c *object.Commit) error {
		if c.Hash == older {
			return storer.ErrStop
		}
		return fn(toCommit(c))
	})
	if err != nil {
		return fmt.Errorf("walking range %s..%s: %w", older, newer, err)
	}
	return nil
}
