package model

import (
	"github.com/google/uuid"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type TokenClaims struct {
	StaffID uuid.UUID `json:"staff_id"`
	SalonID uuid.UUID `json:"salon_id"`
	Email   string    `json:"email"`
	Role    string    `json:"role"`
}
