package model

import (
	"github.com/google/uuid"
)

type Customer struct {
	Base
	SalonID uuid.UUID `db:"salon_id" json:"salon_id"`
	Name    string    `db:"name" json:"name"`
	Email   string    `db:"email" json:"email"`
	Phone   string    `db:"phone" json:"phone"`
	Notes   string    `db:"notes" json:"notes,omitempty"`
}

type CreateCustomerRequest struct {
	SalonID uuid.UUID `json:"salon_id" validate:"required"`
	Name    string    `json:"name" validate:"required,max=200"`
	Email   string    `json:"email" validate:"omitempty,email"`
	Phone   string    `json:"phone" validate:"max=50"`
	Notes   string    `json:"notes" validate:"max=2000"`
}
