package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/coiffly/salon-api/internal/model"
)

func aptAt(day time.Time, startMin, endMin int, status model.AppointmentStatus) *model.Appointment {
	return &model.Appointment{
		StartTime: day.Add(time.Duration(startMin) * time.Minute),
		EndTime:   day.Add(time.Duration(endMin) * time.Minute),
		Status:    status,
	}
}

func TestBusyIntervals_ActiveStatusesBlock(t *testing.T) {
	blocking := []model.AppointmentStatus{
		model.AppointmentStatusReserved,
		model.AppointmentStatusRequested,
		model.AppointmentStatusConfirmed,
		model.AppointmentStatusCheckedIn,
		model.AppointmentStatusInProgress,
		model.AppointmentStatusCompleted,
	}

	for _, status := range blocking {
		t.Run(string(status), func(t *testing.T) {
			apts := []*model.Appointment{aptAt(monday, 600, 660, status)}
			got := BusyIntervals(apts, monday, BufferPolicy{})
			assert.Equal(t, []Interval{{600, 660}}, got)
		})
	}
}

func TestBusyIntervals_CancelledAndNoShowDoNotBlock(t *testing.T) {
	apts := []*model.Appointment{
		aptAt(monday, 600, 660, model.AppointmentStatusCancelled),
		aptAt(monday, 700, 760, model.AppointmentStatusNoShow),
	}

	got := BusyIntervals(apts, monday, BufferPolicy{})
	assert.Empty(t, got)
}

func TestBusyIntervals_BufferExpansion(t *testing.T) {
	apts := []*model.Appointment{aptAt(monday, 600, 660, model.AppointmentStatusConfirmed)}

	got := BusyIntervals(apts, monday, BufferPolicy{BeforeMinutes: 10, AfterMinutes: 15})
	assert.Equal(t, []Interval{{590, 675}}, got)
}

func TestBusyIntervals_OtherDayExcluded(t *testing.T) {
	tuesday := monday.AddDate(0, 0, 1)
	apts := []*model.Appointment{aptAt(tuesday, 600, 660, model.AppointmentStatusConfirmed)}

	got := BusyIntervals(apts, monday, BufferPolicy{})
	assert.Empty(t, got)
}

func TestBusyIntervals_ClampedToDay(t *testing.T) {
	// Buffer pushing past midnight is clamped to the day boundary.
	apts := []*model.Appointment{aptAt(monday, 1380, 1440, model.AppointmentStatusConfirmed)}

	got := BusyIntervals(apts, monday, BufferPolicy{BeforeMinutes: 0, AfterMinutes: 30})
	assert.Equal(t, []Interval{{1380, 1440}}, got)
}

func TestBusyIntervals_OverlappingNotMerged(t *testing.T) {
	apts := []*model.Appointment{
		aptAt(monday, 600, 660, model.AppointmentStatusConfirmed),
		aptAt(monday, 630, 690, model.AppointmentStatusRequested),
	}

	got := BusyIntervals(apts, monday, BufferPolicy{})
	assert.Len(t, got, 2, "merging is left to Subtract")
}
