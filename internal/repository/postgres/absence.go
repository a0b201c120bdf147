package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/coiffly/salon-api/internal/model"
	apperrors "github.com/coiffly/salon-api/pkg/errors"
)

func (r *absenceRepository) Create(ctx context.Context, absence *model.Absence) error {
	query := `
		INSERT INTO absences (
			id, staff_id, start_date, end_date, reason, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	absence.ID = uuid.New()
	absence.CreatedAt = time.Now()
	absence.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		absence.ID,
		absence.StaffID,
		absence.StartDate,
		absence.EndDate,
		absence.Reason,
		absence.CreatedAt,
		absence.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create absence: %w", err)
	}
	return nil
}

func (r *absenceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM absences
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete absence: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("absence", nil)
	}
	return nil
}

// ListForStaff returns absences intersecting the [from, to] date range.
func (r *absenceRepository) ListForStaff(ctx context.Context, staffID uuid.UUID, from, to time.Time) ([]model.Absence, error) {
	query := `
		SELECT id, staff_id, start_date, end_date, reason, created_at, updated_at
		FROM absences
		WHERE staff_id = $1
		AND start_date <= $3
		AND end_date >= $2
		ORDER BY start_date ASC
	`
	var absences []model.Absence
	err := r.db.SelectContext(ctx, &absences, query, staffID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list absences: %w", err)
	}
	return absences, nil
}
