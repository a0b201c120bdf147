package model

import (
	"time"

	"github.com/google/uuid"
)

type Salon struct {
	Base
	Name                string    `db:"name" json:"name"`
	Address             string    `db:"address" json:"address"`
	Phone               string    `db:"phone" json:"phone"`
	Email               string    `db:"email" json:"email"`
	Status              string    `db:"status" json:"status"`
	AutoConfirm         bool      `db:"auto_confirm" json:"auto_confirm"`
	BufferBeforeMinutes int       `db:"buffer_before_minutes" json:"buffer_before_minutes"`
	BufferAfterMinutes  int       `db:"buffer_after_minutes" json:"buffer_after_minutes"`
}

// OpeningHours is one weekly opening interval of the salon.
// Minutes are minutes-of-day, half-open [open, close).
type OpeningHours struct {
	ID           uuid.UUID `db:"id" json:"id"`
	SalonID      uuid.UUID `db:"salon_id" json:"salon_id"`
	DayOfWeek    int       `db:"day_of_week" json:"day_of_week"` // 0 = Sunday .. 6 = Saturday
	OpenMinutes  int       `db:"open_minutes" json:"open_minutes"`
	CloseMinutes int       `db:"close_minutes" json:"close_minutes"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

type CreateSalonRequest struct {
	Name                string `json:"name" validate:"required,max=200"`
	Address             string `json:"address" validate:"max=500"`
	Phone               string `json:"phone" validate:"max=50"`
	Email               string `json:"email" validate:"omitempty,email"`
	AutoConfirm         bool   `json:"auto_confirm"`
	BufferBeforeMinutes *int   `json:"buffer_before_minutes" validate:"omitempty,min=0,max=120"`
	BufferAfterMinutes  *int   `json:"buffer_after_minutes" validate:"omitempty,min=0,max=120"`
}

type UpsertOpeningHoursRequest struct {
	DayOfWeek    int  `json:"day_of_week" validate:"min=0,max=6"`
	OpenMinutes  int  `json:"open_minutes" validate:"min=0,max=1439"`
	CloseMinutes int  `json:"close_minutes" validate:"min=1,max=1440"`
	IsActive     bool `json:"is_active"`
}
