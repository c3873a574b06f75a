package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration marks a malformed naming or arrangement config.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrCountMismatch marks a requested count that disagrees with a grid's size.
	ErrCountMismatch = errors.New("count mismatch")
)

// Invalidf wraps ErrInvalidConfiguration with a formatted reason.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidConfiguration)
}
