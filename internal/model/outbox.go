package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type OutboxStatus string

const (
	OutboxStatusPending   OutboxStatus = "pending"
	OutboxStatusProcessed OutboxStatus = "processed"
	OutboxStatusFailed    OutboxStatus = "failed"
)

type OutboxEvent struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	EventType    string          `db:"event_type" json:"event_type"`
	Payload      json.RawMessage `db:"payload" json:"payload"`
	Status       OutboxStatus    `db:"status" json:"status"`
	ErrorMessage *string         `db:"error_message" json:"error_message,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	ProcessedAt  *time.Time      `db:"processed_at" json:"processed_at,omitempty"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
	RetryCount   int             `db:"retry_count" json:"retry_count"`
}

// Appointment lifecycle event types published through the outbox.
const (
	EventAppointmentBooked     = "appointment.booked"
	EventAppointmentConfirmed  = "appointment.confirmed"
	EventAppointmentCancelled  = "appointment.cancelled"
	EventAppointmentTransition = "appointment.status_changed"
)

// AppointmentEvent is the outbox payload for appointment lifecycle
// notifications consumed by the notification worker.
type AppointmentEvent struct {
	AppointmentID uuid.UUID         `json:"appointment_id"`
	SalonID       uuid.UUID         `json:"salon_id"`
	CustomerID    uuid.UUID         `json:"customer_id"`
	CustomerEmail string            `json:"customer_email,omitempty"`
	CustomerName  string            `json:"customer_name,omitempty"`
	StaffName     string            `json:"staff_name,omitempty"`
	StartTime     time.Time         `json:"start_time"`
	EndTime       time.Time         `json:"end_time"`
	Status        AppointmentStatus `json:"status"`
	ServiceNames  []string          `json:"service_names,omitempty"`
}
