package model

import (
	"time"

	"github.com/google/uuid"
)

// WorkingHours is one weekly working interval of a staff member.
// Multiple rows per day-of-week model split shifts. Minutes are
// minutes-of-day, half-open [start, end). An optional break is cut
// out of the interval when resolving availability.
type WorkingHours struct {
	ID                uuid.UUID `db:"id" json:"id"`
	StaffID           uuid.UUID `db:"staff_id" json:"staff_id"`
	DayOfWeek         int       `db:"day_of_week" json:"day_of_week"` // 0 = Sunday .. 6 = Saturday
	StartMinutes      int       `db:"start_minutes" json:"start_minutes"`
	EndMinutes        int       `db:"end_minutes" json:"end_minutes"`
	BreakStartMinutes *int      `db:"break_start_minutes" json:"break_start_minutes,omitempty"`
	BreakEndMinutes   *int      `db:"break_end_minutes" json:"break_end_minutes,omitempty"`
	Label             *string   `db:"label" json:"label,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

type CreateWorkingHoursRequest struct {
	StaffID           uuid.UUID `json:"staff_id" validate:"required"`
	DayOfWeek         int       `json:"day_of_week" validate:"min=0,max=6"`
	StartMinutes      int       `json:"start_minutes" validate:"min=0,max=1439"`
	EndMinutes        int       `json:"end_minutes" validate:"min=1,max=1440"`
	BreakStartMinutes *int      `json:"break_start_minutes" validate:"omitempty,min=0,max=1439"`
	BreakEndMinutes   *int      `json:"break_end_minutes" validate:"omitempty,min=1,max=1440"`
	Label             *string   `json:"label" validate:"omitempty,max=100"`
}
