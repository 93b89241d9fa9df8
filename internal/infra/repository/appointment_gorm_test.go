package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/stylesync-app/booking-api/internal/db"
	domain "github.com/stylesync-app/booking-api/internal/domain/appointment"
	"github.com/stylesync-app/booking-api/internal/models"
	"github.com/stylesync-app/booking-api/internal/timerange"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(db))

	return db
}

func seedDB(t *testing.T, db *gorm.DB) (*models.Barber, *models.Service) {
	t.Helper()

	barber := &models.Barber{Name: "Diego", WorkStart: "09:00", WorkEnd: "20:00", Active: true}
	require.NoError(t, db.Create(barber).Error)

	service := &models.Service{
		Name:        "Corte Clásico",
		PriceMinor:  150000,
		DurationMin: 30,
		Active:      true,
	}
	require.NoError(t, db.Create(service).Error)

	return barber, service
}

func newAppointment(barberID, serviceID uint, start time.Time, d time.Duration) *models.Appointment {
	ap := &models.Appointment{
		Reference: fmt.Sprintf("ref-%d", start.UnixNano()),
		BarberID:  barberID,
		ServiceID: serviceID,
		Status:    string(domain.StatusConfirmed),
	}
	ap.SetSlot(timerange.TimeRange{Start: start, End: start.Add(d)})
	return ap
}

func TestCreateAppointment_OverlapConflict(t *testing.T) {
	db := testDB(t)
	barber, service := seedDB(t, db)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()

	start := time.Date(2030, 6, 10, 10, 0, 0, 0, time.UTC)

	first := newAppointment(barber.ID, service.ID, start, 30*time.Minute)
	require.NoError(t, repo.CreateAppointment(ctx, first))

	// Overlapping [10:15, 10:45)
	second := newAppointment(barber.ID, service.ID, start.Add(15*time.Minute), 30*time.Minute)
	err := repo.CreateAppointment(ctx, second)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Containing [09:00, 12:00)
	third := newAppointment(barber.ID, service.ID, start.Add(-time.Hour), 3*time.Hour)
	err = repo.CreateAppointment(ctx, third)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreateAppointment_TouchingSlotsAllowed(t *testing.T) {
	db := testDB(t)
	barber, service := seedDB(t, db)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()

	start := time.Date(2030, 6, 10, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateAppointment(ctx,
		newAppointment(barber.ID, service.ID, start, 30*time.Minute)))

	// [10:30, 11:00) touches [10:00, 10:30) and must book.
	require.NoError(t, repo.CreateAppointment(ctx,
		newAppointment(barber.ID, service.ID, start.Add(30*time.Minute), 30*time.Minute)))

	// [09:30, 10:00) touches from the other side.
	require.NoError(t, repo.CreateAppointment(ctx,
		newAppointment(barber.ID, service.ID, start.Add(-30*time.Minute), 30*time.Minute)))
}

func TestCreateAppointment_CancelledDoesNotBlock(t *testing.T) {
	db := testDB(t)
	barber, service := seedDB(t, db)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()

	start := time.Date(2030, 6, 10, 10, 0, 0, 0, time.UTC)

	cancelled := newAppointment(barber.ID, service.ID, start, 30*time.Minute)
	cancelled.Status = string(domain.StatusCancelled)
	require.NoError(t, db.Create(cancelled).Error)

	err := repo.CreateAppointment(ctx,
		newAppointment(barber.ID, service.ID, start, 30*time.Minute))
	assert.NoError(t, err)
}

func TestCreateAppointment_OtherBarberDoesNotBlock(t *testing.T) {
	db := testDB(t)
	barber, service := seedDB(t, db)
	other := &models.Barber{Name: "Nico", WorkStart: "09:00", WorkEnd: "20:00", Active: true}
	require.NoError(t, db.Create(other).Error)

	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()

	start := time.Date(2030, 6, 10, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateAppointment(ctx,
		newAppointment(barber.ID, service.ID, start, 30*time.Minute)))
	require.NoError(t, repo.CreateAppointment(ctx,
		newAppointment(other.ID, service.ID, start, 30*time.Minute)))
}

func TestListActiveForDay(t *testing.T) {
	db := testDB(t)
	barber, service := seedDB(t, db)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()

	day := time.Date(2030, 6, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateAppointment(ctx,
		newAppointment(barber.ID, service.ID, day.Add(10*time.Hour), 30*time.Minute)))

	cancelled := newAppointment(barber.ID, service.ID, day.Add(11*time.Hour), 30*time.Minute)
	cancelled.Status = string(domain.StatusCancelled)
	require.NoError(t, db.Create(cancelled).Error)

	nextDay := newAppointment(barber.ID, service.ID, day.Add(34*time.Hour), 30*time.Minute)
	require.NoError(t, repo.CreateAppointment(ctx, nextDay))

	apps, err := repo.ListActiveForDay(ctx, barber.ID, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.True(t, apps[0].SlotStart.Equal(day.Add(10*time.Hour)))
}

func TestUpdateNotificationState(t *testing.T) {
	db := testDB(t)
	barber, service := seedDB(t, db)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()

	start := time.Date(2030, 6, 10, 10, 0, 0, 0, time.UTC)
	ap := newAppointment(barber.ID, service.ID, start, 30*time.Minute)
	ap.Notes = "prefiere máquina"
	require.NoError(t, repo.CreateAppointment(ctx, ap))

	require.NoError(t, repo.UpdateNotificationState(ctx, ap.ID, true, false))

	got, err := repo.GetAppointment(ctx, ap.ID)
	require.NoError(t, err)
	assert.True(t, got.Reminded24h)
	assert.False(t, got.Reminded2h)
	assert.Equal(t, "prefiere máquina", got.Notes, "flag update must not touch other columns")
	assert.Equal(t, string(domain.StatusConfirmed), got.Status)
}

func TestListConfirmedAfter(t *testing.T) {
	db := testDB(t)
	barber, service := seedDB(t, db)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()

	now := time.Date(2030, 6, 10, 12, 0, 0, 0, time.UTC)

	future := newAppointment(barber.ID, service.ID, now.Add(24*time.Hour), 30*time.Minute)
	require.NoError(t, repo.CreateAppointment(ctx, future))

	past := newAppointment(barber.ID, service.ID, now.Add(-24*time.Hour), 30*time.Minute)
	require.NoError(t, db.Create(past).Error)

	cancelled := newAppointment(barber.ID, service.ID, now.Add(26*time.Hour), 30*time.Minute)
	cancelled.Status = string(domain.StatusCancelled)
	require.NoError(t, db.Create(cancelled).Error)

	apps, err := repo.ListConfirmedAfter(ctx, now)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, future.ID, apps[0].ID)
}

func TestGetOrCreateClient(t *testing.T) {
	db := testDB(t)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()

	c1, err := repo.GetOrCreateClient(ctx, "Martín", "+5491122334455", "martin@gmail.com")
	require.NoError(t, err)

	c2, err := repo.GetOrCreateClient(ctx, "Otro Nombre", "+5491122334455", "otro@gmail.com")
	require.NoError(t, err)

	assert.Equal(t, c1.ID, c2.ID, "same phone resolves to the same client")
	assert.Equal(t, "Martín", c2.Name)
}

func TestInsertFinancialRecord(t *testing.T) {
	db := testDB(t)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()

	rec := &models.FinancialRecord{
		AmountMinor: 150000,
		Kind:        models.FinancialKindIncome,
		Category:    "Servicio",
		Description: "Servicio: Corte Clásico",
	}
	require.NoError(t, repo.InsertFinancialRecord(ctx, rec))
	assert.NotZero(t, rec.ID)
}
