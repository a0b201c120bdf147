package scheduling

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/coiffly/salon-api/internal/model"
)

// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func openingMonToSat(open, close int) []model.OpeningHours {
	var rows []model.OpeningHours
	for dow := 1; dow <= 6; dow++ {
		rows = append(rows, model.OpeningHours{
			DayOfWeek:    dow,
			OpenMinutes:  open,
			CloseMinutes: close,
			IsActive:     true,
		})
	}
	return rows
}

func TestResolveDaySchedule_NoWorkingHours(t *testing.T) {
	got := ResolveDaySchedule(monday, openingMonToSat(480, 1080), nil, nil)
	assert.Empty(t, got, "staff without working hours on that weekday has no availability")
}

func TestResolveDaySchedule_WrongWeekday(t *testing.T) {
	working := []model.WorkingHours{
		{DayOfWeek: 2, StartMinutes: 540, EndMinutes: 1020},
	}
	got := ResolveDaySchedule(monday, openingMonToSat(480, 1080), working, nil)
	assert.Empty(t, got)
}

func TestResolveDaySchedule_BreakSplitsShift(t *testing.T) {
	brkStart, brkEnd := 720, 780
	working := []model.WorkingHours{
		{DayOfWeek: 1, StartMinutes: 540, EndMinutes: 1020, BreakStartMinutes: &brkStart, BreakEndMinutes: &brkEnd},
	}

	got := ResolveDaySchedule(monday, openingMonToSat(480, 1080), working, nil)
	assert.Equal(t, []Interval{{540, 720}, {780, 1020}}, got)
}

func TestResolveDaySchedule_ClippedToOpeningHours(t *testing.T) {
	// Staff claims 07:00-20:00 but the salon only opens 08:00-18:00.
	working := []model.WorkingHours{
		{DayOfWeek: 1, StartMinutes: 420, EndMinutes: 1200},
	}

	got := ResolveDaySchedule(monday, openingMonToSat(480, 1080), working, nil)
	assert.Equal(t, []Interval{{480, 1080}}, got)
}

func TestResolveDaySchedule_SalonClosedThatDay(t *testing.T) {
	sunday := monday.AddDate(0, 0, -1)
	working := []model.WorkingHours{
		{DayOfWeek: 0, StartMinutes: 540, EndMinutes: 1020},
	}

	got := ResolveDaySchedule(sunday, openingMonToSat(480, 1080), working, nil)
	assert.Empty(t, got, "staff cannot be available while the salon is closed")
}

func TestResolveDaySchedule_SplitShifts(t *testing.T) {
	working := []model.WorkingHours{
		{DayOfWeek: 1, StartMinutes: 840, EndMinutes: 1020},
		{DayOfWeek: 1, StartMinutes: 540, EndMinutes: 720},
	}

	got := ResolveDaySchedule(monday, openingMonToSat(480, 1080), working, nil)
	assert.Equal(t, []Interval{{540, 720}, {840, 1020}}, got, "multiple rows per day are ordered")
}

func TestResolveDaySchedule_FullDayAbsence(t *testing.T) {
	working := []model.WorkingHours{
		{DayOfWeek: 1, StartMinutes: 540, EndMinutes: 1020},
	}
	absences := []model.Absence{
		{StaffID: uuid.New(), StartDate: monday, EndDate: monday, Reason: "vacation"},
	}

	got := ResolveDaySchedule(monday, openingMonToSat(480, 1080), working, absences)
	assert.Empty(t, got, "absence blocks the whole day regardless of working hours")
}

func TestResolveDaySchedule_AbsenceRangeCoversDate(t *testing.T) {
	working := []model.WorkingHours{
		{DayOfWeek: 1, StartMinutes: 540, EndMinutes: 1020},
	}
	absences := []model.Absence{
		{StartDate: monday.AddDate(0, 0, -3), EndDate: monday.AddDate(0, 0, 4)},
	}

	got := ResolveDaySchedule(monday, openingMonToSat(480, 1080), working, absences)
	assert.Empty(t, got)
}

func TestResolveDaySchedule_AbsenceOutsideDate(t *testing.T) {
	working := []model.WorkingHours{
		{DayOfWeek: 1, StartMinutes: 540, EndMinutes: 1020},
	}
	absences := []model.Absence{
		{StartDate: monday.AddDate(0, 0, 1), EndDate: monday.AddDate(0, 0, 2)},
	}

	got := ResolveDaySchedule(monday, openingMonToSat(480, 1080), working, absences)
	assert.Equal(t, []Interval{{540, 1020}}, got)
}

func TestResolveDaySchedule_Deterministic(t *testing.T) {
	brkStart, brkEnd := 720, 780
	working := []model.WorkingHours{
		{DayOfWeek: 1, StartMinutes: 540, EndMinutes: 1020, BreakStartMinutes: &brkStart, BreakEndMinutes: &brkEnd},
	}
	opening := openingMonToSat(480, 1080)

	first := ResolveDaySchedule(monday, opening, working, nil)
	second := ResolveDaySchedule(monday, opening, working, nil)
	assert.Equal(t, first, second)
}
