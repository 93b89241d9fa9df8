package appointment

import (
	"context"
	"time"

	"github.com/stylesync-app/booking-api/internal/availability"
	domain "github.com/stylesync-app/booking-api/internal/domain/appointment"
	"github.com/stylesync-app/booking-api/internal/httperr"
)

type AvailabilityInput struct {
	BarberID  uint
	ServiceID uint

	// Date is the UTC-normalized calendar day.
	Date time.Time
}

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]time.Time, error) {

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	day := time.Date(
		in.Date.Year(), in.Date.Month(), in.Date.Day(),
		0, 0, 0, 0,
		time.UTC,
	)
	dayEnd := day.Add(24 * time.Hour)

	existing, err := uc.repo.ListActiveForDay(ctx, barber.ID, day, dayEnd)
	if err != nil {
		return nil, err
	}

	return availability.ComputeSlots(barber, service, day, existing, time.Now().UTC()), nil
}
