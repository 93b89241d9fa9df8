package appointment

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/stylesync-app/booking-api/internal/audit"
	"github.com/stylesync-app/booking-api/internal/availability"
	domain "github.com/stylesync-app/booking-api/internal/domain/appointment"
	"github.com/stylesync-app/booking-api/internal/httperr"
	"github.com/stylesync-app/booking-api/internal/mail"
	"github.com/stylesync-app/booking-api/internal/models"
	"github.com/stylesync-app/booking-api/internal/timerange"
	"github.com/stylesync-app/booking-api/internal/validators"
)

// emailDomainValid does a live DNS check; swapped out in tests.
var emailDomainValid = validators.IsEmailDomainValid

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	BarberID  uint
	ServiceID uint

	// Start is the instant chosen from availability; the slot becomes
	// [Start, Start+service.Duration()).
	Start time.Time

	// Identity: a registered client id, or guest contact details.
	ClientID   *uint
	GuestName  string
	GuestEmail string
	GuestPhone string

	Notes string

	// ActorID is the authenticated staff user for manual bookings,
	// nil for public guest bookings.
	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   domain.Repository
	mailer mail.Mailer
	audit  *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	mailer mail.Mailer,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:   repo,
		mailer: mailer,
		audit:  audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateInput,
) (*models.Appointment, error) {

	now := time.Now().UTC()
	start := in.Start.UTC()

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if service.DurationMin <= 0 {
		return nil, httperr.ErrBusiness("invalid_service_duration")
	}

	if !start.After(now) {
		return nil, httperr.ErrBusiness("slot_in_past")
	}

	slot, err := timerange.FromStart(start, service.Duration())
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_slot")
	}

	window, ok := availability.WorkWindow(barber, start)
	if !ok || slot.Start.Before(window.Start) || slot.End.After(window.End) {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	var client *models.Client
	if in.ClientID != nil {
		client, err = uc.repo.GetClient(ctx, *in.ClientID)
		if err != nil {
			return nil, httperr.ErrBusiness("client_not_found")
		}
	} else {
		if in.GuestName == "" || in.GuestEmail == "" {
			return nil, httperr.ErrBusiness("missing_guest_contact")
		}
		if !emailDomainValid(in.GuestEmail) {
			return nil, httperr.ErrBusiness("invalid_email_domain")
		}

		// Walk-ins booked by staff become registered clients so their
		// history accumulates; public guests stay inline contacts.
		if in.ActorID != nil && in.GuestPhone != "" {
			client, err = uc.repo.GetOrCreateClient(ctx, in.GuestName, in.GuestPhone, in.GuestEmail)
			if err != nil {
				client = nil
			}
		}
	}

	ap := &models.Appointment{
		Reference: uuid.NewString(),
		BarberID:  barber.ID,
		ServiceID: service.ID,
		Status:    string(domain.InitialStatus()),
		Notes:     in.Notes,
	}
	ap.SetSlot(slot)

	if client != nil {
		ap.ClientID = &client.ID
		ap.Client = client
	} else {
		ap.GuestName = in.GuestName
		ap.GuestEmail = in.GuestEmail
		ap.GuestPhone = in.GuestPhone
	}

	// Commit-time re-validation happens inside the repository transaction:
	// two concurrent bookers for the same slot resolve to exactly one
	// success and one ErrConflict.
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if err == domain.ErrConflict {
			uc.audit.Dispatch(audit.Event{
				UserID: in.ActorID,
				Action: "appointment_conflict",
				Entity: "appointment",
				Metadata: map[string]any{
					"barber_id": in.BarberID,
					"slot":      slot.String(),
				},
			})
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	// The appointment stands as booked even if the confirmation email
	// fails: logged, never user-blocking.
	if to := ap.ContactEmail(); uc.mailer != nil && to != "" {
		subject, body := mail.ConfirmationEmail(
			ap.ContactName(),
			service.Name,
			barber.Name,
			slot,
			service.PriceMinor,
		)
		if err := uc.mailer.Send(to, subject, body); err != nil {
			log.Printf("appointment %d: confirmation email failed: %v", ap.ID, err)
		}
	}

	return ap, nil
}
