package classifier

import (
	"fmt"
)

// BumpType is the severity tier by which a version advances.
type BumpType int

const (
	BumpPatch BumpType = iota
	BumpMinor
	BumpMajor
)

func (b BumpType) String() string {
	switch b {
	case BumpMajor:
		return "major"
	case BumpMinor:
		return "minor"
	case BumpPatch:
		return "patch"
	default:
		return "unknown"
	}
}

// MalformedPolicy governs how Classify reacts to a commit message that
// cannot be parsed as a conventional commit.
type MalformedPolicy int

const (
	PolicyWarn MalformedPolicy = iota
	PolicyError
	PolicyIgnore
)

func (p MalformedPolicy) String() string {
	switch p {
	case PolicyError:
		return "error"
	case PolicyIgnore:
		return "ignore"
	case PolicyWarn:
		return "warn"
	default:
		return "unknown"
	}
}

// ParseMalformedPolicy converts the configuration string into a typed
// policy. It is the single place where the string form is validated.
func ParseMalformedPolicy(value string) (MalformedPolicy, error) {
	switch value {
	case "error":
		return PolicyError, nil
	case "warn":
		return PolicyWarn, nil
	case "ignore":
		return PolicyIgnore, nil
	default:
		return PolicyWarn, fmt.Errorf("unknown malformed commit policy %q", value)
	}
}
