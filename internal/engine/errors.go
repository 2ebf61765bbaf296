// Package engine holds plumbing shared by the party-game engines.
package engine

import (
	"errors"
	"fmt"
)

// ErrValidation marks a rejected action: a guard failed and no state was
// mutated. Transports surface these as user-facing messages, never faults.
var ErrValidation = errors.New("invalid action")

// Invalidf builds a validation error with a user-facing message.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// IsValidation reports whether err is a rejected-action error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
