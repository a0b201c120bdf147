package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/coiffly/salon-api/internal/model"
)

// All repository interfaces in one file
type (
	SalonRepository interface {
		Create(ctx context.Context, salon *model.Salon) error
		Get(ctx context.Context, id uuid.UUID) (*model.Salon, error)
		Update(ctx context.Context, salon *model.Salon) error
		ListOpeningHours(ctx context.Context, salonID uuid.UUID) ([]model.OpeningHours, error)
		UpsertOpeningHours(ctx context.Context, row *model.OpeningHours) error
		DeleteOpeningHours(ctx context.Context, salonID uuid.UUID, dayOfWeek int) error
	}

	ServiceRepository interface {
		Create(ctx context.Context, service *model.Service) error
		Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
		GetMany(ctx context.Context, ids []uuid.UUID) ([]*model.Service, error)
		Update(ctx context.Context, service *model.Service) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, salonID uuid.UUID, onlyActive bool) ([]*model.Service, error)
	}

	StaffRepository interface {
		Create(ctx context.Context, staff *model.StaffMember) error
		Get(ctx context.Context, id uuid.UUID) (*model.StaffMember, error)
		GetByEmail(ctx context.Context, email string) (*model.StaffMember, error)
		Update(ctx context.Context, staff *model.StaffMember) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, salonID uuid.UUID) ([]*model.StaffMember, error)
		ListSkills(ctx context.Context, staffID uuid.UUID) ([]model.StaffSkill, error)
		UpsertSkill(ctx context.Context, skill *model.StaffSkill) error
		DeleteSkill(ctx context.Context, staffID, serviceID uuid.UUID) error
		ListQualified(ctx context.Context, salonID uuid.UUID, serviceIDs []uuid.UUID) ([]*model.StaffMember, error)
	}

	WorkingHoursRepository interface {
		Create(ctx context.Context, row *model.WorkingHours) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListForStaff(ctx context.Context, staffID uuid.UUID) ([]model.WorkingHours, error)
	}

	AbsenceRepository interface {
		Create(ctx context.Context, absence *model.Absence) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListForStaff(ctx context.Context, staffID uuid.UUID, from, to time.Time) ([]model.Absence, error)
	}

	CustomerRepository interface {
		Create(ctx context.Context, customer *model.Customer) error
		Get(ctx context.Context, id uuid.UUID) (*model.Customer, error)
		Update(ctx context.Context, customer *model.Customer) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, salonID uuid.UUID, search string) ([]*model.Customer, error)
	}

	AppointmentRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
		ListForStaff(ctx context.Context, staffID uuid.UUID, from, to time.Time) ([]*model.Appointment, error)
		// CreateIfFree inserts the appointment and its service snapshots in
		// one transaction. Concurrent commits for the same staff member
		// serialize on a per-staff advisory lock, and the slot is rechecked
		// under that lock against existing appointments expanded by the
		// salon's buffer minutes. Returns a conflict error when the slot is
		// no longer free.
		CreateIfFree(ctx context.Context, apt *model.Appointment, bufferBefore, bufferAfter int, outboxEvent *model.OutboxEvent) error
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus, reason *string, outboxEvent *model.OutboxEvent) error
		UpdateNotes(ctx context.Context, id uuid.UUID, customerNotes, staffNotes *string) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		GetPendingEventsWithLock(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
