package models

import "errors"

// ErrInvalidSettings marks settings updates rejected at the boundary.
var ErrInvalidSettings = errors.New("invalid settings")
