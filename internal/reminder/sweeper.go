package reminder

import (
	"context"
	"fmt"
	"log"
	"time"

	domain "github.com/stylesync-app/booking-api/internal/domain/appointment"
	"github.com/stylesync-app/booking-api/internal/mail"
	"github.com/stylesync-app/booking-api/internal/models"
)

// Store is the slice of the appointment store the sweep may touch: it reads
// confirmed future appointments and writes only the notification flags.
type Store interface {
	ListConfirmedAfter(ctx context.Context, now time.Time) ([]models.Appointment, error)
	UpdateNotificationState(ctx context.Context, id uint, reminded24h, reminded2h bool) error
}

// Sweeper runs the periodic reminder sweep. Stateless between runs: the
// persisted notification flags are the single source of truth, so any
// number of re-runs sends no duplicates.
type Sweeper struct {
	store  Store
	mailer mail.Mailer
	now    func() time.Time
}

func NewSweeper(store Store, mailer mail.Mailer) *Sweeper {
	return &Sweeper{
		store:  store,
		mailer: mailer,
		now:    time.Now,
	}
}

// Run executes one sweep and returns the number of reminders sent.
// A failed send leaves the flag unset so the reminder is retried on the
// next run while the appointment is still inside the tolerance band; once
// the band has passed the reminder is permanently missed.
func (s *Sweeper) Run(ctx context.Context) (int, error) {
	now := s.now().UTC()

	apps, err := s.store.ListConfirmedAfter(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("reminder: list appointments: %w", err)
	}

	sent := 0
	for i := range apps {
		ap := &apps[i]

		kind, due := domain.DueReminder(ap, now)
		if !due {
			continue
		}

		to := ap.ContactEmail()
		if to == "" {
			log.Printf("reminder: appointment %d has no contact email, skipping", ap.ID)
			continue
		}

		subject, body := mail.ReminderEmail(kind, ap.SlotStart)
		if err := s.mailer.Send(to, subject, body); err != nil {
			log.Printf("reminder: %s send for appointment %d failed: %v", kind, ap.ID, err)
			continue
		}

		// Persist immediately after the successful send; the flag check
		// above is what makes re-runs idempotent.
		domain.MarkReminded(ap, kind)
		if err := s.store.UpdateNotificationState(ctx, ap.ID, ap.Reminded24h, ap.Reminded2h); err != nil {
			log.Printf("reminder: persisting %s flag for appointment %d failed: %v", kind, ap.ID, err)
		}

		sent++
	}

	return sent, nil
}
