package model

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityRequest asks for bookable slots across a date range. A
// nil StaffID means "no preference": every qualified staff member is
// considered and their slots merged into the response.
type AvailabilityRequest struct {
	SalonID    uuid.UUID   `json:"salon_id" validate:"required"`
	ServiceIDs []uuid.UUID `json:"service_ids" validate:"required,min=1"`
	StaffID    *uuid.UUID  `json:"staff_id"`
	DateFrom   time.Time   `json:"date_from" validate:"required"`
	DateTo     time.Time   `json:"date_to" validate:"required"`
}

// DayAvailability groups the slots of a single calendar day.
type DayAvailability struct {
	Date  string     `json:"date"` // 2006-01-02
	Slots []TimeSlot `json:"slots"`
}
