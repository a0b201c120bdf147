package model

import (
	"time"

	"github.com/google/uuid"
)

type StaffMember struct {
	Base
	SalonID               uuid.UUID `db:"salon_id" json:"salon_id"`
	Name                  string    `db:"name" json:"name"`
	Email                 string    `db:"email" json:"email"`
	Password              string    `db:"-" json:"password,omitempty"`
	PasswordHash          string    `db:"password_hash" json:"-"`
	Role                  string    `db:"role" json:"role"`
	Status                string    `db:"status" json:"status"`
	AcceptsOnlineBookings bool      `db:"accepts_online_bookings" json:"accepts_online_bookings"`
}

func (s *StaffMember) IsActive() bool {
	return s.Status == "active"
}

// StaffSkill qualifies a staff member for a service, optionally with a
// staff-specific duration replacing the service default.
type StaffSkill struct {
	StaffID               uuid.UUID `db:"staff_id" json:"staff_id"`
	ServiceID             uuid.UUID `db:"service_id" json:"service_id"`
	CustomDurationMinutes *int      `db:"custom_duration_minutes" json:"custom_duration_minutes,omitempty"`
	CreatedAt             time.Time `db:"created_at" json:"created_at"`
}

type CreateStaffRequest struct {
	SalonID               uuid.UUID `json:"salon_id" validate:"required"`
	Name                  string    `json:"name" validate:"required,max=200"`
	Email                 string    `json:"email" validate:"required,email"`
	Password              string    `json:"password" validate:"required,min=8"`
	Role                  string    `json:"role" validate:"required,oneof=admin stylist receptionist"`
	AcceptsOnlineBookings bool      `json:"accepts_online_bookings"`
}

type UpdateStaffRequest struct {
	Name                  *string `json:"name"`
	Email                 *string `json:"email"`
	Role                  *string `json:"role"`
	Status                *string `json:"status"`
	AcceptsOnlineBookings *bool   `json:"accepts_online_bookings"`
}

type UpsertSkillRequest struct {
	ServiceID             uuid.UUID `json:"service_id" validate:"required"`
	CustomDurationMinutes *int      `json:"custom_duration_minutes" validate:"omitempty,min=5,max=480"`
}
