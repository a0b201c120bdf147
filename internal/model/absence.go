package model

import (
	"time"

	"github.com/google/uuid"
)

// Absence blocks a staff member for every day in [StartDate, EndDate]
// (inclusive dates, whole days).
type Absence struct {
	ID        uuid.UUID `db:"id" json:"id"`
	StaffID   uuid.UUID `db:"staff_id" json:"staff_id"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	Reason    string    `db:"reason" json:"reason"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Covers reports whether the absence blocks the given date.
func (a *Absence) Covers(date time.Time) bool {
	d := truncateToDay(date)
	return !d.Before(truncateToDay(a.StartDate)) && !d.After(truncateToDay(a.EndDate))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

type CreateAbsenceRequest struct {
	StaffID   uuid.UUID `json:"staff_id" validate:"required"`
	StartDate string    `json:"start_date" validate:"required"` // 2006-01-02
	EndDate   string    `json:"end_date" validate:"required"`
	Reason    string    `json:"reason" validate:"max=500"`
}
