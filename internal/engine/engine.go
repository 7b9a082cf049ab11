// Package engine wires the pipeline together: open the repository, index its
// tags, resolve the requested range into segments, aggregate each segment,
// compute its version names, and render the Markdown. The CLI layer is a thin
// shell over Run.
package engine

import (
	"context"
	"strings"

	"github.com/relogkit/relog/internal/bump"
	"github.com/relogkit/relog/internal/gitrepo"
	"github.com/relogkit/relog/internal/identity"
	"github.com/relogkit/relog/internal/render"
	"github.com/relogkit/relog/internal/segment"
	"github.com/relogkit/relog/internal/tagindex"
)

// Options configures a run. Zero values mean: current directory, full range
// from the latest tag (or root) to HEAD, "v" prefix, "origin" remote, no
// handle lookups.
type Options struct {
	// Path locates the repository; any directory inside it works.
	Path string
	// From and To bound the range. Each accepts a tag name, branch, hash, or
	// revision expression. Empty From means the nearest tagged ancestor of To
	// (or the root commit); empty To means HEAD.
	From string
	To   string
	// TagPrefix is prepended to computed version names ("v" by default).
	TagPrefix string
	// Remote names the remote whose URL seeds commit and compare links.
	Remote string
	// Emoji keeps the :code: markers in section titles.
	Emoji bool
	// Lookup resolves author mails to public handles; nil disables lookups.
	Lookup identity.Lookup
}

func (o Options) withDefaults() Options {
	if o.Path == "" {
		o.Path = "."
	}
	if o.TagPrefix == "" {
		o.TagPrefix = "v"
	}
	if o.Remote == "" {
		o.Remote = "origin"
	}
	if o.Lookup == nil {
		o.Lookup = identity.NopLookup{}
	}
	return o
}

// Entry is one rendered segment, newest first in Report order.
type Entry struct {
	Segment  *segment.Segment
	Names    bump.Result
	Markdown string
}

// Report is the complete outcome of a run.
type Report struct {
	// BaseURL is the browse URL derived from the remote, empty when unknown.
	BaseURL string
	// Entries holds every segment in the range, newest first.
	Entries []Entry
	// Markdown is the concatenation of all entries, ready to print or write.
	Markdown string
}

// Latest returns the newest entry. Valid on any Report Run produced, since a
// resolvable range always yields at least one segment.
func (r *Report) Latest() Entry {
	return r.Entries[0]
}

// Run opens the repository at opts.Path, verifies it is clean, and generates
// the changelog for the requested range.
func Run(ctx context.Context, opts Options) (*Report, error) {
	opts = opts.withDefaults()

	repo, err := gitrepo.Open(opts.Path)
	if err != nil {
		return nil, err
	}
	return Generate(ctx, repo, opts)
}

// Generate runs the pipeline over an already-open repository. Split from Run
// so callers holding a programmatic repository skip the disk open and its
// worktree checks.
func Generate(ctx context.Context, repo *gitrepo.Repository, opts Options) (*Report, error) {
	opts = opts.withDefaults()

	idx, err := tagindex.Build(repo)
	if err != nil {
		return nil, err
	}

	boundaries, err := segment.ResolveBoundaries(repo, idx, opts.From, opts.To)
	if err != nil {
		return nil, err
	}

	resolver := identity.NewResolver(opts.Lookup)
	report := &Report{BaseURL: repo.BaseURL(opts.Remote)}
	renderOpts := render.Options{BaseURL: report.BaseURL, Emoji: opts.Emoji}

	for _, pair := range segment.Pairs(boundaries) {
		seg, err := segment.Aggregate(ctx, repo, resolver, pair[0], pair[1])
		if err != nil {
			return nil, err
		}

		names := bump.Compute(seg, opts.TagPrefix)
		report.Entries = append(report.Entries, Entry{
			Segment:  seg,
			Names:    names,
			Markdown: render.Markdown(seg, names, renderOpts),
		})
	}

	parts := make([]string, len(report.Entries))
	for i, e := range report.Entries {
		parts[i] = e.Markdown
	}
	report.Markdown = strings.Join(parts, "\n")
	return report, nil
}
