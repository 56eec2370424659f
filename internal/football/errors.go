package football

import (
	"errors"
	"fmt"
)

var (
	// ErrInvariant marks a broken simulation invariant. It is a defect in
	// the engine, never an expected outcome, and callers must not recover
	// from it by substituting a default.
	ErrInvariant = errors.New("simulation invariant violated")

	// ErrRunaway is returned when a loop exceeds its iteration bound.
	ErrRunaway = errors.New("simulation exceeded iteration limit")

	ErrGameOver    = errors.New("game is over")
	ErrDriveOver   = errors.New("drive is over")
	ErrUnknownCall = errors.New("unknown play call")
)

func invariantf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvariant)
}
