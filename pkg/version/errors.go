package version

import (
	"errors"
)

var (
	ErrInvalidVersion = errors.New("invalid semantic version")
	ErrIncrement      = errors.New("version increment failed")
)
