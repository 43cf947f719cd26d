package classifier

import (
	"fmt"
	"strings"

	"github.com/jkroepke/semver-action/pkg/conventional"
	"github.com/jkroepke/semver-action/pkg/forge"
	"github.com/rs/zerolog"
)

// mergePrefix marks routine merge commits, which never influence the version.
const mergePrefix = "Merge "

// Parser is the conventional-commit collaborator consumed by the classifier.
type Parser interface {
	Parse(message string) (conventional.Message, error)
}

// Classifier decides the bump type for a range of commits.
type Classifier struct {
	logger zerolog.Logger
	parser Parser
}

// New creates a new Classifier instance.
func New(logger zerolog.Logger, parser Parser) *Classifier {
	return &Classifier{logger: logger, parser: parser}
}

// Classify inspects commits in the supplied order and returns the bump type.
// The major and minor flags accumulate monotonically, so order never changes
// the result. Under PolicyError the first malformed message aborts the run
// with an error wrapping ErrMalformedCommit; the returned bump type carries
// no meaning in that case.
func (c *Classifier) Classify(commits []forge.Commit, policy MalformedPolicy) (BumpType, error) {
	var triggersMajor, triggersMinor bool

	for _, commit := range commits {
		if strings.HasPrefix(commit.Message, mergePrefix) {
			c.logger.Trace().Str("message", commit.Message).Msg("SKIP")

			continue
		}

		message, err := c.parser.Parse(commit.Message)
		if err != nil {
			switch policy {
			case PolicyError:
				return BumpPatch, fmt.Errorf("%w: %q", ErrMalformedCommit, commit.Message)
			case PolicyWarn:
				c.logger.Warn().Str("message", commit.Message).Msg("not a conventional commit")
			case PolicyIgnore:
			}

			continue
		}

		switch {
		case hasBreakingNote(message):
			triggersMajor = true

			c.logger.Info().Str("message", commit.Message).Msg("MAJOR")
		case isFeature(message.Type):
			triggersMinor = true

			c.logger.Info().Str("message", commit.Message).Msg("MINOR")
		default:
			c.logger.Info().Str("message", commit.Message).Msg("PATCH")
		}
	}

	switch {
	case triggersMajor:
		return BumpMajor, nil
	case triggersMinor:
		return BumpMinor, nil
	default:
		return BumpPatch, nil
	}
}

func hasBreakingNote(message conventional.Message) bool {
	for _, note := range message.Notes {
		if note.Title == conventional.NoteBreakingChange {
			return true
		}
	}

	return false
}

func isFeature(commitType string) bool {
	switch strings.ToLower(commitType) {
	case "feat", "feature":
		return true
	default:
		return false
	}
}
