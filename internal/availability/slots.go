package availability

import (
	"time"

	"github.com/stylesync-app/booking-api/internal/models"
	"github.com/stylesync-app/booking-api/internal/timerange"
)

// ComputeSlots returns the bookable start instants for a barber and service
// on day, ascending. Candidates step through the barber's working window by
// the service duration (duration-aligned grid); a candidate survives when
// its tentative range fits the window, overlaps none of the existing active
// appointments and is strictly in the future.
//
// Pure: callers supply the confirmed/completed appointments for that day.
// An empty result is valid (fully booked, inactive barber, past day).
func ComputeSlots(
	barber *models.Barber,
	service *models.Service,
	day time.Time,
	existing []models.Appointment,
	now time.Time,
) []time.Time {

	window, ok := WorkWindow(barber, day)
	if !ok {
		return nil
	}

	step := service.Duration()
	if step <= 0 {
		return nil
	}

	var slots []time.Time

	for cur := window.Start; !cur.Add(step).After(window.End); cur = cur.Add(step) {
		if !cur.After(now) {
			continue
		}

		tentative := timerange.TimeRange{Start: cur, End: cur.Add(step)}
		if overlapsAny(tentative, existing) {
			continue
		}

		slots = append(slots, cur)
	}

	return slots
}

// WorkWindow resolves the barber's working window on day (UTC). ok is false
// when the barber is inactive or the window is malformed.
func WorkWindow(barber *models.Barber, day time.Time) (timerange.TimeRange, bool) {
	if !barber.Active {
		return timerange.TimeRange{}, false
	}

	start, err1 := atTimeOfDay(day, barber.WorkStart)
	end, err2 := atTimeOfDay(day, barber.WorkEnd)
	if err1 != nil || err2 != nil {
		return timerange.TimeRange{}, false
	}

	window, err := timerange.New(start, end)
	if err != nil {
		return timerange.TimeRange{}, false
	}
	return window, true
}

func overlapsAny(r timerange.TimeRange, existing []models.Appointment) bool {
	for i := range existing {
		if r.Overlaps(existing[i].Slot()) {
			return true
		}
	}
	return false
}

func atTimeOfDay(day time.Time, hm string) (time.Time, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0,
		time.UTC,
	), nil
}
