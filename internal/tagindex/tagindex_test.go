package tagindex

import (
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relogkit/relog/internal/gitrepo"
)

func TestParseVersion(t *testing.T) {
	tests := map[string]struct {
		name string
		ok   bool
	}{
		"plain":              {"1.2.3", true},
		"v prefix":           {"v1.2.3", true},
		"ver prefix":         {"ver1.2.3", true},
		"prerelease":         {"v1.2.3-beta.1", true},
		"build metadata":     {"v1.2.3+build.5", true},
		"pre and metadata":   {"v1.0.0-rc.1+exp.sha.5114f85", true},
		"two components":     {"v1.2", false},
		"leading zero":       {"v01.2.3", false},
		"not a version":      {"release-candidate", false},
		"empty":              {"", false},
		"bare prefix":        {"v", false},
		"text after version": {"v1.2.3stuff", false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, ok := ParseVersion(tt.name)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestStripPrefix(t *testing.T) {
	assert.Equal(t, "1.2.3", StripPrefix("v1.2.3"))
	assert.Equal(t, "1.2.3", StripPrefix("ver1.2.3"))
	assert.Equal(t, "1.2.3", StripPrefix("1.2.3"))
}

type fixture struct {
	t     *testing.T
	repo  *git.Repository
	wt    *git.Worktree
	clock time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo, err := git.Init(memory.NewStorage(), memfs.New())
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	return &fixture{t: t, repo: repo, wt: wt, clock: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fixture) commit(message string) plumbing.Hash {
	f.t.Helper()
	f.clock = f.clock.Add(time.Minute)
	name := "file-" + f.clock.Format("150405") + ".txt"
	file, err := f.wt.Filesystem.Create(name)
	require.NoError(f.t, err)
	_, err = file.Write([]byte(message))
	require.NoError(f.t, err)
	require.NoError(f.t, file.Close())
	_, err = f.wt.Add(name)
	require.NoError(f.t, err)
	sig := &object.Signature{Name: "Ada Lovelace", Email: "ada@example.com", When: f.clock}
	hash, err := f.wt.Commit(message, &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(f.t, err)
	return hash
}

func (f *fixture) tag(name string, hash plumbing.Hash) {
	f.t.Helper()
	_, err := f.repo.CreateTag(name, hash, nil)
	require.NoError(f.t, err)
}

func TestBuild_FiltersNonSemverTags(t *testing.T) {
	f := newFixture(t)
	first := f.commit("feat: first")
	second := f.commit("fix: second")
	f.tag("v1.0.0", first)
	f.tag("v1.1.0", second)
	f.tag("nightly", second)
	f.tag("v1.2", second)

	idx, err := Build(gitrepo.New(f.repo))
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Len())

	tag, ok := idx.TagFor(first)
	require.True(t, ok)
	assert.Equal(t, "v1.0.0", tag)

	hash, ok := idx.CommitFor("v1.1.0")
	require.True(t, ok)
	assert.Equal(t, second, hash)

	_, ok = idx.CommitFor("nightly")
	assert.False(t, ok)
}

func TestBuild_TieBreakIsLexicographic(t *testing.T) {
	f := newFixture(t)
	hash := f.commit("feat: first")
	f.tag("v1.0.1", hash)
	f.tag("v1.0.0", hash)

	idx, err := Build(gitrepo.New(f.repo))
	require.NoError(t, err)

	// Both tags resolve, but the commit maps to the smallest tag name.
	tag, ok := idx.TagFor(hash)
	require.True(t, ok)
	assert.Equal(t, "v1.0.0", tag)

	_, ok = idx.CommitFor("v1.0.1")
	assert.True(t, ok)
	_, ok = idx.CommitFor("v1.0.0")
	assert.True(t, ok)
}

func TestBuild_UntaggedCommit(t *testing.T) {
	f := newFixture(t)
	hash := f.commit("feat: untagged")

	idx, err := Build(gitrepo.New(f.repo))
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())

	_, ok := idx.TagFor(hash)
	assert.False(t, ok)
}
