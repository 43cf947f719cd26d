package forge

import (
	"errors"
)

var ErrUnresolvableRange = errors.New("commit range not found")
