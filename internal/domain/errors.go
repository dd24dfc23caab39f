package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrConflictingExceptions is returned when two exceptions that both extend
// the duty window are requested together; extensions never sum.
var ErrConflictingExceptions = errors.New("short_haul_16hr and adverse_conditions cannot both extend the duty window")

// ValidationError rejects malformed input before simulation starts. A run
// that fails validation is never partially applied.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// LimitExceededError reports a clock that would pass its cap with no valid
// insertion point remaining. It names the violated clock and the simulated
// instant so the caller can adjust trip parameters and retry.
type LimitExceededError struct {
	Clock string
	Limit float64
	At    time.Time
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("%s clock would exceed %.1fh limit at %s", e.Clock, e.Limit, e.At.Format(time.RFC3339))
}

// InvalidSplitPairingError reports a second sleeper half that does not
// complement the pending first half, or driving attempted while a first
// half is pending.
type InvalidSplitPairingError struct {
	PendingHours float64
	GotHours     float64
	Reason       string
}

func (e *InvalidSplitPairingError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid split sleeper pairing: %s", e.Reason)
	}
	return fmt.Sprintf("invalid split sleeper pairing: %.1fh half does not complement pending %.1fh half", e.GotHours, e.PendingHours)
}
