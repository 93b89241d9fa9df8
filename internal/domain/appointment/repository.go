package appointment

import (
	"context"
	"time"

	"github.com/stylesync-app/booking-api/internal/models"
)

type Repository interface {
	// -------- Reference data --------
	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Client --------
	GetClient(
		ctx context.Context,
		id uint,
	) (*models.Client, error)

	GetOrCreateClient(
		ctx context.Context,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Appointment (create / conflict) --------

	// CreateAppointment re-validates against the persisted appointment set
	// inside a transaction and returns ErrConflict when an overlapping
	// confirmed/completed appointment for the same barber exists.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	// -------- Availability --------

	// ListActiveForDay returns confirmed/completed appointments whose slot
	// starts within [dayStart, dayEnd), ordered by slot start.
	ListActiveForDay(
		ctx context.Context,
		barberID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Appointment, error)

	ListForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Reminders --------
	ListConfirmedAfter(
		ctx context.Context,
		now time.Time,
	) ([]models.Appointment, error)

	// UpdateNotificationState persists only the reminder flags, never
	// status or slot.
	UpdateNotificationState(
		ctx context.Context,
		id uint,
		reminded24h bool,
		reminded2h bool,
	) error

	// -------- Finance --------
	InsertFinancialRecord(
		ctx context.Context,
		rec *models.FinancialRecord,
	) error
}
