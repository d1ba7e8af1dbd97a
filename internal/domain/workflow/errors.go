package workflow

import "errors"

// ErrInvalidState is returned for an unknown deal status
var ErrInvalidState = errors.New("invalid state")
