package segment

import (
	"context"

	"github.com/relogkit/relog/internal/conventional"
	"github.com/relogkit/relog/internal/gitrepo"
	"github.com/relogkit/relog/internal/identity"
)

// Aggregate walks every commit between a boundary pair (older exclusive,
// newer inclusive) in reverse-chronological order and builds the segment:
// commits bucketed by type, the breaking flag, and the merged contributor
// set. Commits whose subject fails classification are skipped without
// aborting the walk; their authors do not count as contributors.
func Aggregate(ctx context.Context, repo *gitrepo.Repository, resolver *identity.Resolver, from, to Boundary) (*Segment, error) {
	seg := newSegment(from, to)

	err := repo.WalkRange(from.Hash, to.Hash, func(raw gitrepo.Commit) error {
		commit, ok := conventional.Classify(raw.Hash, raw.Subject, raw.Body, raw.AuthorName, raw.AuthorMail)
		if !ok {
			return nil
		}

		for i := range commit.Authors {
			commit.Authors[i].Handle = resolver.Resolve(ctx, commit.Authors[i].Mail)
			seg.addContributor(commit.Authors[i])
		}

		bucket := commit.Type
		if !conventional.IsKnownType(bucket) {
			bucket = "other"
		}
		seg.CommitsByType[bucket] = append(seg.CommitsByType[bucket], commit)

		if commit.Breaking {
			seg.HasBreaking = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return seg, nil
}
