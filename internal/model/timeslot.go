package model

import (
	"time"

	"github.com/google/uuid"
)

// TimeSlot is a bookable option computed for one staff member. It is
// derived data, recomputed on every availability query and never
// persisted or cached.
type TimeSlot struct {
	Date         time.Time `json:"date"`
	StartMinutes int       `json:"start_minutes"`
	EndMinutes   int       `json:"end_minutes"`
	StaffID      uuid.UUID `json:"staff_id"`
	StaffName    string    `json:"staff_name"`
}

func (t TimeSlot) StartsAt() time.Time {
	return t.Date.Add(time.Duration(t.StartMinutes) * time.Minute)
}

func (t TimeSlot) EndsAt() time.Time {
	return t.Date.Add(time.Duration(t.EndMinutes) * time.Minute)
}
