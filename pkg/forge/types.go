package forge

import (
	"context"
)

// Commit is one revision inside a compared range.
type Commit struct {
	SHA     string
	Message string
}

// Client resolves repository state from the hosting side. Implementations
// exhaust pagination internally, callers always see complete ranges.
type Client interface {
	// LatestReleaseTag returns the tag of the newest release, or an empty
	// string when the repository has no releases yet.
	LatestReleaseTag(ctx context.Context) (string, error)
	// CompareCommits returns every commit between base and head in
	// chronological order.
	CompareCommits(ctx context.Context, base, head string) ([]Commit, error)
	// DefaultBranch returns the name of the repository's default branch.
	DefaultBranch(ctx context.Context) (string, error)
}
