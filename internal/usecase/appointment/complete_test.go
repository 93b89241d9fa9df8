package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/stylesync-app/booking-api/internal/domain/appointment"
	"github.com/stylesync-app/booking-api/internal/httperr"
	"github.com/stylesync-app/booking-api/internal/models"
	"github.com/stylesync-app/booking-api/internal/timerange"
)

func seedAppointment(repo *mockRepo, start time.Time, status domain.Status) *models.Appointment {
	ap := &models.Appointment{
		ID:        repo.nextID,
		Reference: "ref-test",
		BarberID:  1,
		ServiceID: 1,
		Status:    string(status),
		Service: models.Service{
			ID:         1,
			Name:       "Corte Clásico",
			PriceMinor: 150000,
		},
		GuestName:  "Martín",
		GuestEmail: "martin@gmail.com",
	}
	ap.SetSlot(timerange.TimeRange{Start: start, End: start.Add(30 * time.Minute)})

	repo.appointments[ap.ID] = ap
	repo.nextID++
	return ap
}

func TestCompleteAppointment_CreatesIncomeRecord(t *testing.T) {
	repo := newMockRepo()
	past := time.Now().UTC().Add(-2 * time.Hour)
	ap := seedAppointment(repo, past, domain.StatusConfirmed)

	uc := NewCompleteAppointment(repo, nil)

	got, err := uc.Execute(context.Background(), CompleteInput{AppointmentID: ap.ID})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), got.Status)
	require.NotNil(t, got.CompletedAt)

	require.Len(t, repo.financeRecords, 1)
	rec := repo.financeRecords[0]
	assert.Equal(t, int64(150000), rec.AmountMinor)
	assert.Equal(t, models.FinancialKindIncome, rec.Kind)
	assert.Equal(t, "Servicio", rec.Category)
	assert.Equal(t, "Servicio: Corte Clásico", rec.Description)
}

func TestCompleteAppointment_ChargedAmountOverride(t *testing.T) {
	repo := newMockRepo()
	past := time.Now().UTC().Add(-2 * time.Hour)
	ap := seedAppointment(repo, past, domain.StatusConfirmed)

	uc := NewCompleteAppointment(repo, nil)

	charged := int64(180000)
	_, err := uc.Execute(context.Background(), CompleteInput{
		AppointmentID:      ap.ID,
		ChargedAmountMinor: &charged,
	})
	require.NoError(t, err)

	require.Len(t, repo.financeRecords, 1)
	assert.Equal(t, charged, repo.financeRecords[0].AmountMinor)
}

func TestCompleteAppointment_BeforeStart(t *testing.T) {
	repo := newMockRepo()
	future := time.Now().UTC().Add(2 * time.Hour)
	ap := seedAppointment(repo, future, domain.StatusConfirmed)

	uc := NewCompleteAppointment(repo, nil)

	_, err := uc.Execute(context.Background(), CompleteInput{AppointmentID: ap.ID})
	assert.ErrorIs(t, err, domain.ErrNotStarted)
	assert.Empty(t, repo.financeRecords)
}

func TestCompleteAppointment_CancelledRejected(t *testing.T) {
	repo := newMockRepo()
	past := time.Now().UTC().Add(-2 * time.Hour)
	ap := seedAppointment(repo, past, domain.StatusCancelled)

	uc := NewCompleteAppointment(repo, nil)

	_, err := uc.Execute(context.Background(), CompleteInput{AppointmentID: ap.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Empty(t, repo.financeRecords)
}

func TestCompleteAppointment_PartialFailure(t *testing.T) {
	repo := newMockRepo()
	past := time.Now().UTC().Add(-2 * time.Hour)
	ap := seedAppointment(repo, past, domain.StatusConfirmed)
	repo.financeErr = errors.New("insert failed")

	uc := NewCompleteAppointment(repo, nil)

	got, err := uc.Execute(context.Background(), CompleteInput{AppointmentID: ap.ID})

	var partial *domain.PartialCompletionError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, ap.ID, partial.AppointmentID)

	// Status stays flipped: the gap is surfaced, never rolled back.
	require.NotNil(t, got)
	assert.Equal(t, string(domain.StatusCompleted), got.Status)
	assert.Equal(t, string(domain.StatusCompleted), repo.appointments[ap.ID].Status)
}

func TestCancelAppointment(t *testing.T) {
	repo := newMockRepo()
	future := time.Now().UTC().Add(48 * time.Hour)
	ap := seedAppointment(repo, future, domain.StatusConfirmed)

	uc := NewCancelAppointment(repo, nil)

	got, err := uc.Execute(context.Background(), ap.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), got.Status)
	require.NotNil(t, got.CancelledAt)

	// No financial side effect.
	assert.Empty(t, repo.financeRecords)

	_, err = uc.Execute(context.Background(), ap.ID, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestDeleteAppointment_BypassesStateMachine(t *testing.T) {
	repo := newMockRepo()
	past := time.Now().UTC().Add(-2 * time.Hour)
	ap := seedAppointment(repo, past, domain.StatusCompleted)

	uc := NewDeleteAppointment(repo, nil)

	require.NoError(t, uc.Execute(context.Background(), ap.ID, nil))
	assert.NotContains(t, repo.appointments, ap.ID)
}

func TestDeleteAppointment_NotFound(t *testing.T) {
	repo := newMockRepo()
	uc := NewDeleteAppointment(repo, nil)

	err := uc.Execute(context.Background(), 99, nil)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}
