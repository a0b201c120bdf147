package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusReserved   AppointmentStatus = "reserved"
	AppointmentStatusRequested  AppointmentStatus = "requested"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusCheckedIn  AppointmentStatus = "checked_in"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
	AppointmentStatusNoShow     AppointmentStatus = "no_show"
)

// BookedVia channels
const (
	ChannelOnline = "online"
	ChannelAdmin  = "admin"
	ChannelPhone  = "phone"
	ChannelWalkIn = "walk_in"
)

// forward progression of the appointment lifecycle; cancelled and
// no_show are additionally reachable from every non-terminal state.
var nextStatus = map[AppointmentStatus]AppointmentStatus{
	AppointmentStatusReserved:   AppointmentStatusRequested,
	AppointmentStatusRequested:  AppointmentStatusConfirmed,
	AppointmentStatusConfirmed:  AppointmentStatusCheckedIn,
	AppointmentStatusCheckedIn:  AppointmentStatusInProgress,
	AppointmentStatusInProgress: AppointmentStatusCompleted,
}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusReserved, AppointmentStatusRequested,
		AppointmentStatusConfirmed, AppointmentStatusCheckedIn,
		AppointmentStatusInProgress, AppointmentStatusCompleted,
		AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (s AppointmentStatus) IsTerminal() bool {
	switch s {
	case AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// BlocksSlot reports whether an appointment in this status occupies
// staff time. Cancelled and no-show appointments do not.
func (s AppointmentStatus) BlocksSlot() bool {
	switch s {
	case AppointmentStatusCancelled, AppointmentStatusNoShow:
		return false
	}
	return true
}

// CanTransitionTo validates a status change against the state machine.
// Terminal states admit no outgoing transitions.
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	if !s.Valid() || !target.Valid() {
		return false
	}
	if s.IsTerminal() {
		return false
	}
	if target == AppointmentStatusCancelled || target == AppointmentStatusNoShow {
		return true
	}
	return nextStatus[s] == target
}

type Appointment struct {
	Base
	SalonID       uuid.UUID             `db:"salon_id" json:"salon_id"`
	CustomerID    uuid.UUID             `db:"customer_id" json:"customer_id"`
	StaffID       uuid.UUID             `db:"staff_id" json:"staff_id"`
	StartTime     time.Time             `db:"start_time" json:"start_time"`
	EndTime       time.Time             `db:"end_time" json:"end_time"`
	Status        AppointmentStatus     `db:"status" json:"status"`
	CustomerNotes string                `db:"customer_notes" json:"customer_notes,omitempty"`
	StaffNotes    string                `db:"staff_notes" json:"staff_notes,omitempty"`
	BookedVia     string                `db:"booked_via" json:"booked_via"`
	CancelReason  *string               `db:"cancel_reason" json:"cancel_reason,omitempty"`
	Services      []*AppointmentService `db:"-" json:"services,omitempty"`
}

// AppointmentService is the snapshot of a booked service at booking
// time. Name, price, duration and tax never change retroactively when
// the catalog entry is edited later.
type AppointmentService struct {
	ID              uuid.UUID `db:"id" json:"id"`
	AppointmentID   uuid.UUID `db:"appointment_id" json:"appointment_id"`
	ServiceID       uuid.UUID `db:"service_id" json:"service_id"`
	Name            string    `db:"name" json:"name"`
	PriceCHF        float64   `db:"price_chf" json:"price_chf"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	TaxRatePercent  float64   `db:"tax_rate_percent" json:"tax_rate_percent"`
	SortOrder       int       `db:"sort_order" json:"sort_order"`
}

// CommitAppointmentRequest books a previously displayed slot.
type CommitAppointmentRequest struct {
	SalonID       uuid.UUID   `json:"salon_id" validate:"required"`
	CustomerID    uuid.UUID   `json:"customer_id" validate:"required"`
	StaffID       uuid.UUID   `json:"staff_id" validate:"required"`
	Date          string      `json:"date" validate:"required"` // 2006-01-02
	StartMinutes  int         `json:"start_minutes" validate:"min=0,max=1439"`
	ServiceIDs    []uuid.UUID `json:"service_ids" validate:"required,min=1"`
	CustomerNotes string      `json:"customer_notes" validate:"max=2000"`
	BookedVia     string      `json:"booked_via" validate:"omitempty,oneof=online admin phone walk_in"`
}

type TransitionStatusRequest struct {
	Status AppointmentStatus `json:"status" validate:"required"`
	Reason *string           `json:"reason" validate:"omitempty,max=500"`
}

type AppointmentFilters struct {
	SalonID    uuid.UUID
	StaffID    uuid.UUID
	CustomerID uuid.UUID
	Status     AppointmentStatus
	StartDate  time.Time
	EndDate    time.Time
}
