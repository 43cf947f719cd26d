package forge

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/rs/zerolog"
)

// Git resolves releases and commit ranges from a local checkout. Used when
// no API credential is configured.
type Git struct {
	logger zerolog.Logger
	repo   *git.Repository
}

// OpenGit opens the repository at path.
func OpenGit(logger zerolog.Logger, path string) (*Git, error) {
	rootFS := osfs.New(path)

	repo, err := git.Open(filesystem.NewStorage(rootFS, nil), rootFS)
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}

	return &Git{logger: logger, repo: repo}, nil
}

// LatestReleaseTag returns the highest semver-parseable tag, or an empty
// string when no tag parses.
func (g *Git) LatestReleaseTag(_ context.Context) (string, error) {
	tags, err := g.repo.Tags()
	if err != nil {
		return "", fmt.Errorf("failed to list tags: %w", err)
	}

	var (
		latest     *semver.Version
		latestName string
	)

	err = tags.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()

		parsed, err := semver.NewVersion(name)
		if err != nil {
			return nil
		}

		if latest == nil || parsed.GreaterThan(latest) {
			latest = parsed
			latestName = name
		}

		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to iterate tags: %w", err)
	}

	return latestName, nil
}

func (g *Git) CompareCommits(_ context.Context, base, head string) ([]Commit, error) {
	baseHash, err := g.repo.ResolveRevision(plumbing.Revision(base))
	if err != nil {
		return nil, fmt.Errorf("%w: %s...%s: %w", ErrUnresolvableRange, base, head, err)
	}

	headHash, err := g.repo.ResolveRevision(plumbing.Revision(head))
	if err != nil {
		return nil, fmt.Errorf("%w: %s...%s: %w", ErrUnresolvableRange, base, head, err)
	}

	repoLogs, err := g.repo.Log(&git.LogOptions{From: *headHash})
	if err != nil {
		return nil, fmt.Errorf("failed to get log: %w", err)
	}

	var commits []Commit

	for log, err := repoLogs.Next(); err == nil; log, err = repoLogs.Next() {
		if log.Hash == *baseHash {
			break
		}

		commits = append(commits, Commit{SHA: log.Hash.String(), Message: log.Message})
	}

	// the log walks newest first, compared ranges are chronological
	slices.Reverse(commits)

	return commits, nil
}

func (g *Git) DefaultBranch(_ context.Context) (string, error) {
	ref, err := g.repo.Reference(plumbing.ReferenceName("refs/remotes/origin/HEAD"), true)
	if err != nil {
		g.logger.Debug().Msg("origin HEAD not found, assuming main")

		return "main", nil
	}

	return strings.TrimPrefix(ref.Name().Short(), "origin/"), nil
}
