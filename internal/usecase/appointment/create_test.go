package appointment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/stylesync-app/booking-api/internal/domain/appointment"
	"github.com/stylesync-app/booking-api/internal/httperr"
	"github.com/stylesync-app/booking-api/internal/models"
)

func TestMain(m *testing.M) {
	// no DNS in tests
	emailDomainValid = func(email string) bool {
		return strings.Contains(email, "@") && !strings.HasSuffix(email, ".invalid")
	}
	m.Run()
}

func seedCatalog(repo *mockRepo) {
	repo.barbers[1] = &models.Barber{
		ID:        1,
		Name:      "Diego",
		WorkStart: "09:00",
		WorkEnd:   "20:00",
		Active:    true,
	}
	repo.services[1] = &models.Service{
		ID:          1,
		Name:        "Corte Clásico",
		PriceMinor:  150000,
		DurationMin: 30,
		Active:      true,
	}
}

func guestInput(start time.Time) CreateInput {
	return CreateInput{
		BarberID:   1,
		ServiceID:  1,
		Start:      start,
		GuestName:  "Martín",
		GuestEmail: "martin@gmail.com",
		GuestPhone: "+5491122334455",
	}
}

func TestCreateAppointment_Guest(t *testing.T) {
	repo := newMockRepo()
	seedCatalog(repo)
	mailer := &mockMailer{}

	uc := NewCreateAppointment(repo, mailer, nil)

	start := time.Date(2030, 6, 10, 10, 0, 0, 0, time.UTC)
	ap, err := uc.Execute(context.Background(), guestInput(start))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), ap.Status)
	assert.NotEmpty(t, ap.Reference)
	assert.True(t, ap.SlotStart.Equal(start))
	assert.True(t, ap.SlotEnd.Equal(start.Add(30*time.Minute)))
	assert.Equal(t, "Martín", ap.GuestName)
	assert.Nil(t, ap.ClientID)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "martin@gmail.com", mailer.sent[0].to)
	assert.Contains(t, mailer.sent[0].subject, "Confirmación")
}

func TestCreateAppointment_ConflictOnOverlap(t *testing.T) {
	repo := newMockRepo()
	seedCatalog(repo)

	uc := NewCreateAppointment(repo, &mockMailer{}, nil)

	start := time.Date(2030, 6, 10, 10, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), guestInput(start))
	require.NoError(t, err)

	// Second booking overlaps the first: [10:15, 10:45) vs [10:00, 10:30).
	_, err = uc.Execute(context.Background(), guestInput(start.Add(15*time.Minute)))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreateAppointment_AdjacentSlotAllowed(t *testing.T) {
	repo := newMockRepo()
	seedCatalog(repo)

	uc := NewCreateAppointment(repo, &mockMailer{}, nil)

	start := time.Date(2030, 6, 10, 10, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), guestInput(start))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), guestInput(start.Add(30*time.Minute)))
	assert.NoError(t, err)
}

func TestCreateAppointment_PastSlotRejected(t *testing.T) {
	repo := newMockRepo()
	seedCatalog(repo)

	uc := NewCreateAppointment(repo, &mockMailer{}, nil)

	start := time.Date(2020, 6, 10, 10, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), guestInput(start))
	assert.True(t, httperr.IsBusiness(err, "slot_in_past"))
}

func TestCreateAppointment_OutsideWorkingHours(t *testing.T) {
	repo := newMockRepo()
	seedCatalog(repo)

	uc := NewCreateAppointment(repo, &mockMailer{}, nil)

	// 19:45 + 30min spills past the 20:00 close.
	start := time.Date(2030, 6, 10, 19, 45, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), guestInput(start))
	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))

	start = time.Date(2030, 6, 10, 8, 0, 0, 0, time.UTC)
	_, err = uc.Execute(context.Background(), guestInput(start))
	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))
}

func TestCreateAppointment_GuestValidation(t *testing.T) {
	repo := newMockRepo()
	seedCatalog(repo)

	uc := NewCreateAppointment(repo, &mockMailer{}, nil)
	start := time.Date(2030, 6, 10, 10, 0, 0, 0, time.UTC)

	in := guestInput(start)
	in.GuestEmail = ""
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "missing_guest_contact"))

	in = guestInput(start)
	in.GuestEmail = "martin@definitely-not-a-real-domain-xyz.invalid"
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_email_domain"))
}

func TestCreateAppointment_RegisteredClient(t *testing.T) {
	repo := newMockRepo()
	seedCatalog(repo)
	repo.clients[7] = &models.Client{ID: 7, Name: "Lucía", Email: "lucia@gmail.com"}

	uc := NewCreateAppointment(repo, &mockMailer{}, nil)

	clientID := uint(7)
	in := CreateInput{
		BarberID:  1,
		ServiceID: 1,
		Start:     time.Date(2030, 6, 10, 11, 0, 0, 0, time.UTC),
		ClientID:  &clientID,
	}

	ap, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, ap.ClientID)
	assert.Equal(t, uint(7), *ap.ClientID)
	assert.Equal(t, "Lucía", ap.ContactName())
}

func TestCreateAppointment_UnknownClient(t *testing.T) {
	repo := newMockRepo()
	seedCatalog(repo)

	uc := NewCreateAppointment(repo, &mockMailer{}, nil)

	clientID := uint(99)
	in := CreateInput{
		BarberID:  1,
		ServiceID: 1,
		Start:     time.Date(2030, 6, 10, 11, 0, 0, 0, time.UTC),
		ClientID:  &clientID,
	}

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "client_not_found"))
}

func TestCreateAppointment_StaffWalkInRegistersClient(t *testing.T) {
	repo := newMockRepo()
	seedCatalog(repo)

	uc := NewCreateAppointment(repo, &mockMailer{}, nil)

	actor := uint(3)
	in := guestInput(time.Date(2030, 6, 10, 11, 0, 0, 0, time.UTC))
	in.ActorID = &actor

	ap, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, ap.ClientID)
	assert.Len(t, repo.clients, 1)
}

func TestCreateAppointment_MailFailureDoesNotBlock(t *testing.T) {
	repo := newMockRepo()
	seedCatalog(repo)
	mailer := &mockMailer{sendErr: errors.New("smtp down")}

	uc := NewCreateAppointment(repo, mailer, nil)

	start := time.Date(2030, 6, 10, 10, 0, 0, 0, time.UTC)
	ap, err := uc.Execute(context.Background(), guestInput(start))

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), ap.Status)
}

func TestCreateAppointment_UnknownBarberOrService(t *testing.T) {
	repo := newMockRepo()
	seedCatalog(repo)

	uc := NewCreateAppointment(repo, &mockMailer{}, nil)
	start := time.Date(2030, 6, 10, 10, 0, 0, 0, time.UTC)

	in := guestInput(start)
	in.BarberID = 42
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "barber_not_found"))

	in = guestInput(start)
	in.ServiceID = 42
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}
