package resolver

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Masterminds/semver/v3"
	"github.com/jkroepke/semver-action/pkg/classifier"
	"github.com/jkroepke/semver-action/pkg/config"
	"github.com/jkroepke/semver-action/pkg/forge"
	"github.com/jkroepke/semver-action/pkg/version"
	"github.com/rs/zerolog"
)

// Resolver computes the next semantic version for one run.
type Resolver struct {
	logger     zerolog.Logger
	conf       *config.Config
	client     forge.Client
	classifier *classifier.Classifier
}

// New creates a new Resolver instance.
func New(logger zerolog.Logger, conf *config.Config, client forge.Client, bumpClassifier *classifier.Classifier) *Resolver {
	return &Resolver{logger: logger, conf: conf, client: client, classifier: bumpClassifier}
}

// Run resolves the new version. Every error is fatal for the run, partial
// outputs must not be used.
func (r *Resolver) Run(ctx context.Context) (Outputs, error) {
	tag, err := r.client.LatestReleaseTag(ctx)
	if err != nil {
		return Outputs{}, fmt.Errorf("failed to fetch latest release: %w", err)
	}

	if tag == "" {
		return r.initialRelease(ctx)
	}

	current, err := version.Parse(tag)
	if err != nil {
		return Outputs{}, err
	}

	commits, err := r.client.CompareCommits(ctx, tag, r.conf.Branch)
	if err != nil {
		return Outputs{}, fmt.Errorf("failed to compare %s with %s: %w", tag, r.conf.Branch, err)
	}

	r.logger.Info().Int("commits", len(commits)).Str("tag", tag).Msg("classifying commits since last release")

	bump, err := r.classifier.Classify(commits, r.conf.MalformedPolicy)
	if err != nil {
		return Outputs{}, err
	}

	next, err := version.Increment(current, bump)
	if err != nil {
		return Outputs{}, err
	}

	newVersion, err := r.finalize(ctx, next)
	if err != nil {
		return Outputs{}, err
	}

	return Outputs{
		LatestReleaseTag: tag,
		CurrentVersion:   current.String(),
		NewVersion:       newVersion,
		// the major is taken before suffixing, the suffix never alters it
		NewMajorVersion: strconv.FormatUint(next.Major(), 10),
	}, nil
}

// initialRelease uses the configured seed directly, without bump arithmetic.
func (r *Resolver) initialRelease(ctx context.Context) (Outputs, error) {
	seed, err := version.Parse(r.conf.InitialVersion)
	if err != nil {
		return Outputs{}, err
	}

	r.logger.Info().Str("version", seed.String()).Msg("no prior release, using initial version")

	newVersion, err := r.finalize(ctx, *seed)
	if err != nil {
		return Outputs{}, err
	}

	return Outputs{
		NewVersion:      newVersion,
		NewMajorVersion: strconv.FormatUint(seed.Major(), 10),
	}, nil
}

// finalize marks the version as a pre-release when the run does not target
// the default branch.
func (r *Resolver) finalize(ctx context.Context, next semver.Version) (string, error) {
	defaultBranch, err := r.client.DefaultBranch(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch default branch: %w", err)
	}

	if r.conf.Branch == defaultBranch {
		return next.String(), nil
	}

	suffixed := version.Suffix(next, r.conf.PrereleaseGlue, r.conf.ShortSHA())
	r.logger.Info().Str("version", suffixed).Str("branch", r.conf.Branch).Msg("pre-release build")

	return suffixed, nil
}
