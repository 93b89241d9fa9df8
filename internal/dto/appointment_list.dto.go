package dto

import (
	"time"

	"github.com/stylesync-app/booking-api/internal/models"
)

type AppointmentListDTO struct {
	ID          uint      `json:"id"`
	Reference   string    `json:"reference"`
	Slot        string    `json:"slot"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	ClientName  string    `json:"client_name"`
	ServiceName string    `json:"service_name"`
}

func FromAppointment(ap *models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:          ap.ID,
		Reference:   ap.Reference,
		Slot:        ap.Slot().String(),
		StartTime:   ap.SlotStart,
		EndTime:     ap.SlotEnd,
		Status:      ap.Status,
		ClientName:  ap.ContactName(),
		ServiceName: ap.Service.Name,
	}
}
