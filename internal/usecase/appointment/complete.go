package appointment

import (
	"context"
	"time"

	"github.com/stylesync-app/booking-api/internal/audit"
	domain "github.com/stylesync-app/booking-api/internal/domain/appointment"
	"github.com/stylesync-app/booking-api/internal/httperr"
	"github.com/stylesync-app/booking-api/internal/models"
)

type CompleteInput struct {
	AppointmentID uint

	// ChargedAmountMinor overrides the charged amount; nil freezes the
	// service price at completion time.
	ChargedAmountMinor *int64

	// ServiceName overrides the financial record description.
	ServiceName string

	ActorID *uint
}

type CompleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	in CompleteInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := time.Now().UTC()
	if err := domain.Complete(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	amount := ap.Service.PriceMinor
	if in.ChargedAmountMinor != nil {
		amount = *in.ChargedAmountMinor
	}
	serviceName := ap.Service.Name
	if in.ServiceName != "" {
		serviceName = in.ServiceName
	}

	rec := &models.FinancialRecord{
		AmountMinor: amount,
		Kind:        models.FinancialKindIncome,
		Category:    "Servicio",
		Description: "Servicio: " + serviceName,
	}

	// The status flip and the financial insert are two writes. When the
	// second fails the appointment stays completed and the gap is surfaced
	// as PartialCompletionError, never as success.
	if err := uc.repo.InsertFinancialRecord(ctx, rec); err != nil {
		return ap, &domain.PartialCompletionError{AppointmentID: ap.ID, Err: err}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"amount_minor": amount},
	})

	return ap, nil
}
