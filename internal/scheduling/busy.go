package scheduling

import (
	"time"

	"github.com/coiffly/salon-api/internal/model"
)

// BufferPolicy expands busy intervals around existing appointments.
// Values come from salon defaults or the aggregation of the selected
// services; the caller decides the source.
type BufferPolicy struct {
	BeforeMinutes int
	AfterMinutes  int
}

// BusyIntervals projects the appointments that occupy staff time onto
// the given date, expanded by the buffer policy and clamped to the
// day. Cancelled and no-show appointments never block. Overlapping
// intervals are not merged here; Subtract handles overlap.
func BusyIntervals(appointments []*model.Appointment, date time.Time, buf BufferPolicy) []Interval {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var busy []Interval
	for _, apt := range appointments {
		if !apt.Status.BlocksSlot() {
			continue
		}

		start := apt.StartTime.Add(-time.Duration(buf.BeforeMinutes) * time.Minute)
		end := apt.EndTime.Add(time.Duration(buf.AfterMinutes) * time.Minute)

		if !end.After(dayStart) || !start.Before(dayEnd) {
			continue
		}

		startMin := 0
		if start.After(dayStart) {
			startMin = int(start.Sub(dayStart) / time.Minute)
		}
		endMin := MinutesPerDay
		if end.Before(dayEnd) {
			endMin = int(end.Sub(dayStart) / time.Minute)
		}

		if iv, err := NewInterval(startMin, endMin); err == nil {
			busy = append(busy, iv)
		}
	}
	return busy
}
