package model

import (
	"github.com/google/uuid"
)

type Service struct {
	Base
	SalonID         uuid.UUID `db:"salon_id" json:"salon_id"`
	Name            string    `db:"name" json:"name"`
	Description     string    `db:"description" json:"description"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	PriceCHF        float64   `db:"price_chf" json:"price_chf"`
	TaxRatePercent  float64   `db:"tax_rate_percent" json:"tax_rate_percent"`
	Status          string    `db:"status" json:"status"`
	OnlineBookable  bool      `db:"online_bookable" json:"online_bookable"`
}

func (s *Service) IsActive() bool {
	return s.Status == "active"
}

type CreateServiceRequest struct {
	SalonID         uuid.UUID `json:"salon_id" validate:"required"`
	Name            string    `json:"name" validate:"required,max=200"`
	Description     string    `json:"description" validate:"max=2000"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,min=5,max=480"`
	PriceCHF        float64   `json:"price_chf" validate:"min=0"`
	TaxRatePercent  float64   `json:"tax_rate_percent" validate:"min=0,max=100"`
	OnlineBookable  bool      `json:"online_bookable"`
}

type UpdateServiceRequest struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	DurationMinutes *int     `json:"duration_minutes"`
	PriceCHF        *float64 `json:"price_chf"`
	TaxRatePercent  *float64 `json:"tax_rate_percent"`
	Status          *string  `json:"status"`
	OnlineBookable  *bool    `json:"online_bookable"`
}
