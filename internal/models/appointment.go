package models

import (
	"encoding/json"
	"time"

	"github.com/stylesync-app/booking-api/internal/timerange"
)

type Appointment struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	BarberID uint   `json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// Client identity is tagged at the boundary: either a registered client
	// or an inline guest contact, never both.
	ClientID   *uint   `json:"client_id,omitempty"`
	Client     *Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client,omitempty"`
	GuestName  string  `gorm:"size:100" json:"guest_name,omitempty"`
	GuestEmail string  `gorm:"size:100" json:"guest_email,omitempty"`
	GuestPhone string  `gorm:"size:20" json:"guest_phone,omitempty"`

	SlotStart time.Time `gorm:"index" json:"-"`
	SlotEnd   time.Time `json:"-"`

	Status string `gorm:"size:20;default:'confirmed'" json:"status"`

	// Monotonic: once a flag is set it is never cleared.
	Reminded24h bool `gorm:"column:reminded_24h;default:false" json:"reminded_24h"`
	Reminded2h  bool `gorm:"column:reminded_2h;default:false" json:"reminded_2h"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) Slot() timerange.TimeRange {
	return timerange.TimeRange{Start: a.SlotStart, End: a.SlotEnd}
}

func (a *Appointment) SetSlot(r timerange.TimeRange) {
	a.SlotStart = r.Start
	a.SlotEnd = r.End
}

func (a *Appointment) ContactName() string {
	if a.Client != nil && a.Client.Name != "" {
		return a.Client.Name
	}
	return a.GuestName
}

func (a *Appointment) ContactEmail() string {
	if a.Client != nil && a.Client.Email != "" {
		return a.Client.Email
	}
	return a.GuestEmail
}

// MarshalJSON adds the serialized slot ("[start,end)") so the half-open
// interval crosses the boundary in its wire form.
func (a Appointment) MarshalJSON() ([]byte, error) {
	type alias Appointment
	return json.Marshal(struct {
		alias
		Slot string `json:"slot"`
	}{
		alias: alias(a),
		Slot:  a.Slot().String(),
	})
}
