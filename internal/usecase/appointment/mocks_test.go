package appointment

import (
	"context"
	"errors"
	"time"

	domain "github.com/stylesync-app/booking-api/internal/domain/appointment"
	"github.com/stylesync-app/booking-api/internal/models"
)

// ======================================================
// MOCK REPOSITORY
// ======================================================

type mockRepo struct {
	barbers  map[uint]*models.Barber
	services map[uint]*models.Service
	clients  map[uint]*models.Client

	appointments map[uint]*models.Appointment
	nextID       uint

	createErr  error
	updateErr  error
	financeErr error

	financeRecords []*models.FinancialRecord
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		barbers:      map[uint]*models.Barber{},
		services:     map[uint]*models.Service{},
		clients:      map[uint]*models.Client{},
		appointments: map[uint]*models.Appointment{},
		nextID:       1,
	}
}

var errNotFound = errors.New("not found")

func (m *mockRepo) GetBarber(_ context.Context, id uint) (*models.Barber, error) {
	if b, ok := m.barbers[id]; ok {
		return b, nil
	}
	return nil, errNotFound
}

func (m *mockRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	if s, ok := m.services[id]; ok {
		return s, nil
	}
	return nil, errNotFound
}

func (m *mockRepo) GetClient(_ context.Context, id uint) (*models.Client, error) {
	if c, ok := m.clients[id]; ok {
		return c, nil
	}
	return nil, errNotFound
}

func (m *mockRepo) GetOrCreateClient(
	_ context.Context,
	name, phone, email string,
) (*models.Client, error) {
	for _, c := range m.clients {
		if c.Phone == phone {
			return c, nil
		}
	}
	c := &models.Client{ID: uint(len(m.clients) + 1), Name: name, Phone: phone, Email: email}
	m.clients[c.ID] = c
	return c, nil
}

func (m *mockRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if m.createErr != nil {
		return m.createErr
	}

	// same re-validation the real repository performs
	for _, existing := range m.appointments {
		if existing.BarberID != ap.BarberID {
			continue
		}
		if existing.Status != string(domain.StatusConfirmed) &&
			existing.Status != string(domain.StatusCompleted) {
			continue
		}
		if existing.Slot().Overlaps(ap.Slot()) {
			return domain.ErrConflict
		}
	}

	ap.ID = m.nextID
	m.nextID++
	m.appointments[ap.ID] = ap
	return nil
}

func (m *mockRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	if ap, ok := m.appointments[id]; ok {
		return ap, nil
	}
	return nil, errNotFound
}

func (m *mockRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.appointments[ap.ID] = ap
	return nil
}

func (m *mockRepo) DeleteAppointment(_ context.Context, id uint) error {
	delete(m.appointments, id)
	return nil
}

func (m *mockRepo) ListActiveForDay(
	_ context.Context,
	barberID uint,
	dayStart, dayEnd time.Time,
) ([]models.Appointment, error) {

	var out []models.Appointment
	for _, ap := range m.appointments {
		if ap.BarberID != barberID {
			continue
		}
		if ap.Status != string(domain.StatusConfirmed) &&
			ap.Status != string(domain.StatusCompleted) {
			continue
		}
		if ap.SlotStart.Before(dayStart) || !ap.SlotStart.Before(dayEnd) {
			continue
		}
		out = append(out, *ap)
	}
	return out, nil
}

func (m *mockRepo) ListForPeriod(
	_ context.Context,
	barberID uint,
	start, end time.Time,
) ([]models.Appointment, error) {

	var out []models.Appointment
	for _, ap := range m.appointments {
		if ap.BarberID != barberID {
			continue
		}
		if ap.SlotStart.Before(start) || !ap.SlotStart.Before(end) {
			continue
		}
		out = append(out, *ap)
	}
	return out, nil
}

func (m *mockRepo) ListConfirmedAfter(
	_ context.Context,
	now time.Time,
) ([]models.Appointment, error) {

	var out []models.Appointment
	for _, ap := range m.appointments {
		if ap.Status == string(domain.StatusConfirmed) && ap.SlotStart.After(now) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (m *mockRepo) UpdateNotificationState(
	_ context.Context,
	id uint,
	reminded24h, reminded2h bool,
) error {
	if ap, ok := m.appointments[id]; ok {
		ap.Reminded24h = reminded24h
		ap.Reminded2h = reminded2h
	}
	return nil
}

func (m *mockRepo) InsertFinancialRecord(_ context.Context, rec *models.FinancialRecord) error {
	if m.financeErr != nil {
		return m.financeErr
	}
	rec.ID = uint(len(m.financeRecords) + 1)
	m.financeRecords = append(m.financeRecords, rec)
	return nil
}

var _ domain.Repository = (*mockRepo)(nil)

// ======================================================
// MOCK MAILER
// ======================================================

type sentMail struct {
	to      string
	subject string
	body    string
}

type mockMailer struct {
	sent    []sentMail
	sendErr error
}

func (m *mockMailer) Send(to, subject, htmlBody string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}
