package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coiffly/salon-api/internal/model"
)

func TestEnumerateSlots_WorkedExample(t *testing.T) {
	// Monday 09:00-17:00 with a 12:00-13:00 break, one existing
	// appointment 10:00-11:00, a 60 minute service and 15 minute steps.
	brkStart, brkEnd := 720, 780
	working := []model.WorkingHours{
		{DayOfWeek: 1, StartMinutes: 540, EndMinutes: 1020, BreakStartMinutes: &brkStart, BreakEndMinutes: &brkEnd},
	}
	available := ResolveDaySchedule(monday, openingMonToSat(480, 1080), working, nil)
	busy := BusyIntervals([]*model.Appointment{
		aptAt(monday, 600, 660, model.AppointmentStatusConfirmed),
	}, monday, BufferPolicy{})

	got := EnumerateSlots(available, busy, 60, 15, -1)

	// 09:00 fits exactly before the appointment, 11:00 exactly before the
	// break, then every 15 minutes from 13:00 until 16:00 which ends at
	// closing. Starts from 10:00 through 10:45 overlap the appointment and
	// 16:15 onwards would run past 17:00.
	want := []int{540, 660, 780, 795, 810, 825, 840, 855, 870, 885, 900, 915, 930, 945, 960}
	assert.Equal(t, want, got)
}

func TestEnumerateSlots_BoundaryTouchValid(t *testing.T) {
	available := []Interval{{540, 720}}
	busy := []Interval{{600, 660}}

	got := EnumerateSlots(available, busy, 60, 15, -1)

	assert.Contains(t, got, 540, "slot ending exactly at a busy start is valid")
	assert.Contains(t, got, 660, "slot starting exactly at a busy end is valid")
	assert.NotContains(t, got, 555)
	assert.NotContains(t, got, 600)
	assert.NotContains(t, got, 645)
}

func TestEnumerateSlots_EverySlotFitsInvariant(t *testing.T) {
	available := []Interval{{540, 720}, {780, 1020}}
	busy := []Interval{{600, 660}, {900, 915}}
	duration := 45

	for _, start := range EnumerateSlots(available, busy, duration, 15, -1) {
		slot := Interval{Start: start, End: start + duration}

		inside := false
		for _, a := range available {
			if slot.Start >= a.Start && slot.End <= a.End {
				inside = true
			}
		}
		assert.True(t, inside, "slot %v must lie within an available interval", slot)

		for _, b := range busy {
			assert.False(t, slot.Overlaps(b), "slot %v overlaps busy %v", slot, b)
		}
	}
}

func TestEnumerateSlots_NotBeforeExcludesPast(t *testing.T) {
	available := []Interval{{540, 720}}

	got := EnumerateSlots(available, nil, 30, 15, 601)

	assert.NotContains(t, got, 540)
	assert.NotContains(t, got, 600)
	assert.Contains(t, got, 615)
}

func TestEnumerateSlots_DurationLongerThanInterval(t *testing.T) {
	available := []Interval{{540, 600}}
	assert.Empty(t, EnumerateSlots(available, nil, 90, 15, -1))
}

func TestEnumerateSlots_InvalidParameters(t *testing.T) {
	available := []Interval{{540, 720}}
	assert.Nil(t, EnumerateSlots(available, nil, 0, 15, -1))
	assert.Nil(t, EnumerateSlots(available, nil, 30, 0, -1))
}

func TestEnumerateSlots_Idempotent(t *testing.T) {
	available := []Interval{{540, 720}, {780, 1020}}
	busy := []Interval{{600, 660}}

	first := EnumerateSlots(available, busy, 30, 15, -1)
	second := EnumerateSlots(available, busy, 30, 15, -1)
	assert.Equal(t, first, second)
}
