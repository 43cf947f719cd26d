package classifier

import (
	"errors"
)

var ErrMalformedCommit = errors.New("commit message is not a conventional commit")
