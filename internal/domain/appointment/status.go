package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// InitialStatus is the status of every newly created appointment.
func InitialStatus() Status {
	return StatusConfirmed
}

// ActiveStatuses are the statuses that hold a slot: two appointments for
// the same barber in these statuses may never overlap.
func ActiveStatuses() []string {
	return []string{string(StatusConfirmed), string(StatusCompleted)}
}
