package postgres

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/coiffly/salon-api/internal/model"
	apperrors "github.com/coiffly/salon-api/pkg/errors"
)

const appointmentColumns = `
	id, salon_id, customer_id, staff_id, start_time, end_time, status,
	customer_notes, staff_notes, booked_via, cancel_reason, created_at, updated_at
`

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE id = $1
	`
	var apt model.Appointment
	err := r.db.GetContext(ctx, &apt, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("appointment", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	if err := r.loadServices(ctx, &apt); err != nil {
		return nil, err
	}
	return &apt, nil
}

func (r *appointmentRepository) loadServices(ctx context.Context, apt *model.Appointment) error {
	query := `
		SELECT id, appointment_id, service_id, name, price_chf,
			   duration_minutes, tax_rate_percent, sort_order
		FROM appointment_services
		WHERE appointment_id = $1
		ORDER BY sort_order ASC
	`
	var services []*model.AppointmentService
	err := r.db.SelectContext(ctx, &services, query, apt.ID)
	if err != nil {
		return fmt.Errorf("failed to load appointment services: %w", err)
	}
	apt.Services = services
	return nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE salon_id = $1
	`
	args := []interface{}{filters.SalonID}
	argIdx := 2

	if filters.StaffID != uuid.Nil {
		query += fmt.Sprintf(" AND staff_id = $%d", argIdx)
		args = append(args, filters.StaffID)
		argIdx++
	}
	if filters.CustomerID != uuid.Nil {
		query += fmt.Sprintf(" AND customer_id = $%d", argIdx)
		args = append(args, filters.CustomerID)
		argIdx++
	}
	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filters.Status)
		argIdx++
	}
	if !filters.StartDate.IsZero() {
		query += fmt.Sprintf(" AND end_time > $%d", argIdx)
		args = append(args, filters.StartDate)
		argIdx++
	}
	if !filters.EndDate.IsZero() {
		query += fmt.Sprintf(" AND start_time < $%d", argIdx)
		args = append(args, filters.EndDate)
		argIdx++
	}
	query += " ORDER BY start_time ASC"

	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// ListForStaff returns every appointment of the staff member intersecting
// the [from, to) window, regardless of status. Callers decide which
// statuses count against availability.
func (r *appointmentRepository) ListForStaff(ctx context.Context, staffID uuid.UUID, from, to time.Time) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE staff_id = $1
		AND start_time < $3
		AND end_time > $2
		ORDER BY start_time ASC
	`
	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, staffID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) CreateIfFree(ctx context.Context, apt *model.Appointment, bufferBefore, bufferAfter int, outboxEvent *model.OutboxEvent) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Serialize commits per staff member on a transaction-scoped
	// advisory lock. Row locks cannot do this: when the slot is free
	// the recheck matches no rows, so two concurrent transactions
	// would each see it free and both insert.
	_, err = tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, staffLockKey(apt.StaffID))
	if err != nil {
		return fmt.Errorf("failed to lock staff calendar: %w", err)
	}

	// Recheck under the lock. An existing appointment expanded by the
	// salon buffers, [start-before, end+after), must not overlap the
	// new one; rewritten onto the stored columns that is
	// start_time < new_end+before AND end_time > new_start-after.
	windowStart := apt.StartTime.Add(-time.Duration(bufferAfter) * time.Minute)
	windowEnd := apt.EndTime.Add(time.Duration(bufferBefore) * time.Minute)

	conflictQuery := `
		SELECT id
		FROM appointments
		WHERE staff_id = $1
		AND status NOT IN ('cancelled', 'no_show')
		AND start_time < $3
		AND end_time > $2
	`
	var conflicting []uuid.UUID
	err = tx.SelectContext(ctx, &conflicting, conflictQuery, apt.StaffID, windowStart, windowEnd)
	if err != nil {
		return fmt.Errorf("failed to check overlapping appointments: %w", err)
	}
	if len(conflicting) > 0 {
		return apperrors.Conflict("slot is no longer available", nil)
	}

	apt.ID = uuid.New()
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = time.Now()

	insertApt := `
		INSERT INTO appointments (
			id, salon_id, customer_id, staff_id, start_time, end_time, status,
			customer_notes, staff_notes, booked_via, cancel_reason, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err = tx.ExecContext(ctx, insertApt,
		apt.ID,
		apt.SalonID,
		apt.CustomerID,
		apt.StaffID,
		apt.StartTime,
		apt.EndTime,
		apt.Status,
		apt.CustomerNotes,
		apt.StaffNotes,
		apt.BookedVia,
		apt.CancelReason,
		apt.CreatedAt,
		apt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert appointment: %w", err)
	}

	insertSvc := `
		INSERT INTO appointment_services (
			id, appointment_id, service_id, name, price_chf,
			duration_minutes, tax_rate_percent, sort_order
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for i, svc := range apt.Services {
		svc.ID = uuid.New()
		svc.AppointmentID = apt.ID
		svc.SortOrder = i

		_, err = tx.ExecContext(ctx, insertSvc,
			svc.ID,
			svc.AppointmentID,
			svc.ServiceID,
			svc.Name,
			svc.PriceCHF,
			svc.DurationMinutes,
			svc.TaxRatePercent,
			svc.SortOrder,
		)
		if err != nil {
			return fmt.Errorf("failed to insert appointment service: %w", err)
		}
	}

	if outboxEvent != nil {
		if err := insertOutboxEvent(ctx, tx, outboxEvent); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus, reason *string, outboxEvent *model.OutboxEvent) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE appointments
		SET status = $1, cancel_reason = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := tx.ExecContext(ctx, query, status, reason, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment", nil)
	}

	if outboxEvent != nil {
		if err := insertOutboxEvent(ctx, tx, outboxEvent); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit status update: %w", err)
	}
	return nil
}

func (r *appointmentRepository) UpdateNotes(ctx context.Context, id uuid.UUID, customerNotes, staffNotes *string) error {
	query := `
		UPDATE appointments
		SET customer_notes = COALESCE($1, customer_notes),
			staff_notes = COALESCE($2, staff_notes),
			updated_at = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query, customerNotes, staffNotes, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update appointment notes: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment", nil)
	}
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM appointments
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment", nil)
	}
	return nil
}

func insertOutboxEvent(ctx context.Context, tx *sqlx.Tx, event *model.OutboxEvent) error {
	query := `
		INSERT INTO outbox_events (
			id, event_type, payload, status, created_at, updated_at, retry_count
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	event.ID = uuid.New()
	event.Status = model.OutboxStatusPending
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()

	_, err := tx.ExecContext(ctx, query,
		event.ID,
		event.EventType,
		event.Payload,
		event.Status,
		event.CreatedAt,
		event.UpdatedAt,
		event.RetryCount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert outbox event: %w", err)
	}
	return nil
}

// staffLockKey derives the advisory lock key for a staff member's
// calendar from the first eight bytes of their id.
func staffLockKey(id uuid.UUID) int64 {
	return int64(binary.BigEndian.Uint64(id[:8]))
}
