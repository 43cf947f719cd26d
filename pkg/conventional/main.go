package conventional

import (
	"fmt"
	"strings"

	cc "github.com/leodido/go-conventionalcommits"
	"github.com/leodido/go-conventionalcommits/parser"
)

// NoteBreakingChange is the canonical title of a breaking-change note.
// Both the `!` marker and breaking-change footers surface under this title.
const NoteBreakingChange = "BREAKING CHANGE"

// Note is a structured annotation extracted from a commit footer.
type Note struct {
	Title string
	Body  string
}

// Message is the structured form of a conventional commit message.
type Message struct {
	Type  string
	Notes []Note
}

// Parser turns raw commit messages into structured Messages.
type Parser struct {
	machine cc.Machine
}

func New() *Parser {
	return &Parser{
		machine: parser.NewMachine(parser.WithTypes(cc.TypesConventional)),
	}
}

// Parse parses a single commit message. Messages that do not conform to the
// conventional-commit grammar yield an error wrapping ErrNotConventional.
func (p *Parser) Parse(message string) (Message, error) {
	res, err := p.machine.Parse([]byte(message))
	if err != nil {
		return Message{}, fmt.Errorf("%w: %w", ErrNotConventional, err)
	}

	commit, ok := res.(*cc.ConventionalCommit)
	if !ok || !res.Ok() {
		return Message{}, ErrNotConventional
	}

	msg := Message{Type: commit.Type}

	if commit.IsBreakingChange() {
		msg.Notes = append(msg.Notes, Note{Title: NoteBreakingChange, Body: breakingBody(commit)})
	}

	for title, values := range commit.Footers {
		if isBreakingFooter(title) {
			continue
		}

		for _, value := range values {
			msg.Notes = append(msg.Notes, Note{Title: title, Body: value})
		}
	}

	return msg, nil
}

func breakingBody(commit *cc.ConventionalCommit) string {
	for _, title := range []string{"breaking-change", "breaking change"} {
		if values := commit.Footers[title]; len(values) > 0 {
			return values[0]
		}
	}

	return commit.Description
}

func isBreakingFooter(title string) bool {
	switch strings.ToLower(title) {
	case "breaking-change", "breaking change":
		return true
	default:
		return false
	}
}
