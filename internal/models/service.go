package models

import "time"

// Service pricing is in minor currency units. Price and duration of an
// already-completed appointment are captured onto the financial record at
// completion time and never looked up again.
type Service struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`

	PriceMinor  int64 `json:"price_minor"`
	DurationMin int   `json:"duration_min"`

	Category string `gorm:"size:50" json:"category"`
	Active   bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMin) * time.Minute
}
