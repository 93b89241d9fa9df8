package appointment

import (
	"time"

	"github.com/stylesync-app/booking-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Complete flips confirmed → completed. Only confirmed appointments whose
// slot has already started can complete.
func Complete(ap *models.Appointment, now time.Time) error {
	if Status(ap.Status) != StatusConfirmed {
		return ErrInvalidTransition
	}
	if ap.SlotStart.After(now) {
		return ErrNotStarted
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// Cancel flips confirmed → cancelled. No financial side effect.
func Cancel(ap *models.Appointment, now time.Time) error {
	if Status(ap.Status) != StatusConfirmed {
		return ErrInvalidTransition
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}
