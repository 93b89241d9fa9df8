package appointment

import (
	"time"

	"github.com/stylesync-app/booking-api/internal/models"
)

type ReminderKind string

const (
	Reminder24h ReminderKind = "24h"
	Reminder2h  ReminderKind = "2h"
)

// DueReminder reports which reminder, if any, is due for ap at now. The
// tolerance bands around the 24h/2h offsets absorb the sweep cadence: an
// appointment is caught within one sweep of each threshold without
// resending, and a reminder whose band has passed is permanently missed.
// At most one kind is due per call; the bands do not overlap.
func DueReminder(ap *models.Appointment, now time.Time) (ReminderKind, bool) {
	hours := ap.SlotStart.Sub(now).Hours()

	if hours > 23.5 && hours < 24.5 && !ap.Reminded24h {
		return Reminder24h, true
	}
	if hours > 1.5 && hours < 2.5 && !ap.Reminded2h {
		return Reminder2h, true
	}
	return "", false
}

// MarkReminded sets the flag for kind. Flags are monotonic; nothing ever
// clears them.
func MarkReminded(ap *models.Appointment, kind ReminderKind) {
	switch kind {
	case Reminder24h:
		ap.Reminded24h = true
	case Reminder2h:
		ap.Reminded2h = true
	}
}
