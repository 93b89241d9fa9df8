package models

import "time"

// Barber is the professional a slot is booked with. The working window
// (WorkStart/WorkEnd, "15:04" clock times applied on the requested day in
// UTC) defines which start instants are eligible for slot generation.
type Barber struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`

	WorkStart string `gorm:"size:5;default:'09:00'" json:"work_start"`
	WorkEnd   string `gorm:"size:5;default:'20:00'" json:"work_end"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
