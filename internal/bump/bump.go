// Package bump computes the candidate next versions for a segment under
// semantic-versioning rules. The engine only proposes; selection beyond the
// default is a caller concern.
package bump

import (
	"github.com/Masterminds/semver/v3"

	"github.com/relogkit/relog/internal/segment"
	"github.com/relogkit/relog/internal/tagindex"
)

// Level names a bump magnitude.
type Level string

const (
	Major Level = "major"
	Minor Level = "minor"
	Patch Level = "patch"
)

// Result carries the naming decision for one segment.
type Result struct {
	// FromName is the older boundary's display name: its tag, or short hash.
	FromName string
	// ToName is the segment's final name: the newer boundary's tag when one
	// exists, otherwise the default candidate formatted as <prefix><version>.
	ToName string
	// FromVersion is the parsed lower bound (0.0.0 when the older boundary
	// carries no tag).
	FromVersion *semver.Version
	// Candidates holds the three possible successors, nil when the newer
	// boundary is already tagged (no computation happens then).
	Candidates map[Level]*semver.Version
	// Default is the level selected by the segment's content, empty when
	// the newer boundary is already tagged.
	Default Level
}

// Compute determines the from/to naming for a segment. The older boundary's
// tag (prefix stripped) seeds the arithmetic; a tagged newer boundary
// short-circuits to that tag verbatim.
func Compute(seg *segment.Segment, prefix string) Result {
	res := Result{FromName: seg.From.Name(), FromVersion: fromVersion(seg)}

	if seg.To.Tagged() {
		res.ToName = seg.To.Tag
		return res
	}

	res.Candidates = Candidates(res.FromVersion)
	res.Default = DefaultLevel(seg)
	res.ToName = prefix + res.Candidates[res.Default].String()
	return res
}

func fromVersion(seg *segment.Segment) *semver.Version {
	if seg.From.Tagged() {
		if v, ok := tagindex.ParseVersion(seg.From.Tag); ok {
			return v
		}
	}
	return semver.New(0, 0, 0, "", "")
}

// Candidates returns the three possible successors of v. Pre-release and
// build metadata are cleared on every bump, per SemVer 2.0.
func Candidates(v *semver.Version) map[Level]*semver.Version {
	return map[Level]*semver.Version{
		Major: semver.New(v.Major()+1, 0, 0, "", ""),
		Minor: semver.New(v.Major(), v.Minor()+1, 0, "", ""),
		Patch: semver.New(v.Major(), v.Minor(), v.Patch()+1, "", ""),
	}
}

// DefaultLevel selects the bump magnitude a segment's content implies:
// any breaking commit forces major, a feature forces minor, anything else
// is a patch.
func DefaultLevel(seg *segment.Segment) Level {
	if seg.HasBreaking {
		return Major
	}
	if len(seg.CommitsByType["feat"]) > 0 {
		return Minor
	}
	return Patch
}
