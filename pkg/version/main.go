package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/jkroepke/semver-action/pkg/classifier"
)

// Parse validates a version string (a release tag or the initial seed).
// A leading "v" is accepted and dropped from the string form.
func Parse(raw string) (*semver.Version, error) {
	parsed, err := semver.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidVersion, raw, err)
	}

	return parsed, nil
}

// Increment applies the bump type to the current version. Major resets minor
// and patch, minor resets patch.
func Increment(current *semver.Version, bump classifier.BumpType) (semver.Version, error) {
	switch bump {
	case classifier.BumpMajor:
		return current.IncMajor(), nil
	case classifier.BumpMinor:
		return current.IncMinor(), nil
	case classifier.BumpPatch:
		return current.IncPatch(), nil
	default:
		return semver.Version{}, fmt.Errorf("%w: no increment for bump %q", ErrIncrement, bump.String())
	}
}

// Suffix appends a build identifier derived from the triggering revision to
// the version string, joined by glue. The glue is embedded verbatim; keeping
// the result valid semver is the caller's concern.
func Suffix(v semver.Version, glue, shortHash string) string {
	return v.String() + glue + shortHash
}
