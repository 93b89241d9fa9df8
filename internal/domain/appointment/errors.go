package appointment

import (
	"errors"
	"fmt"
)

var (
	// ErrConflict: an overlapping confirmed/completed appointment for the
	// same barber already exists at commit time. The caller must re-query
	// availability and choose again; it is never retried automatically.
	ErrConflict = errors.New("appointment: slot conflict")

	// ErrInvalidTransition: the requested lifecycle transition is not
	// allowed from the current status.
	ErrInvalidTransition = errors.New("appointment: invalid status transition")

	// ErrNotStarted: completion requested before the slot has started.
	ErrNotStarted = errors.New("appointment: slot has not started yet")
)

// PartialCompletionError: the status flipped to completed but the financial
// record write failed. The appointment stands completed without a matching
// record; reconciliation is an administrative action.
type PartialCompletionError struct {
	AppointmentID uint
	Err           error
}

func (e *PartialCompletionError) Error() string {
	return fmt.Sprintf(
		"appointment %d completed but financial record missing: %v",
		e.AppointmentID, e.Err,
	)
}

func (e *PartialCompletionError) Unwrap() error {
	return e.Err
}
