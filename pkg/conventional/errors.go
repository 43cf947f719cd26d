package conventional

import (
	"errors"
)

var ErrNotConventional = errors.New("message is not a conventional commit")
