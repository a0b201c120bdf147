package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/coiffly/salon-api/internal/model"
	apperrors "github.com/coiffly/salon-api/pkg/errors"
)

func (r *workingHoursRepository) Create(ctx context.Context, row *model.WorkingHours) error {
	query := `
		INSERT INTO working_hours (
			id, staff_id, day_of_week, start_minutes, end_minutes,
			break_start_minutes, break_end_minutes, label, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	row.ID = uuid.New()
	row.CreatedAt = time.Now()
	row.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		row.ID,
		row.StaffID,
		row.DayOfWeek,
		row.StartMinutes,
		row.EndMinutes,
		row.BreakStartMinutes,
		row.BreakEndMinutes,
		row.Label,
		row.CreatedAt,
		row.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create working hours: %w", err)
	}
	return nil
}

func (r *workingHoursRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM working_hours
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete working hours: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("working hours", nil)
	}
	return nil
}

func (r *workingHoursRepository) ListForStaff(ctx context.Context, staffID uuid.UUID) ([]model.WorkingHours, error) {
	query := `
		SELECT id, staff_id, day_of_week, start_minutes, end_minutes,
			   break_start_minutes, break_end_minutes, label, created_at, updated_at
		FROM working_hours
		WHERE staff_id = $1
		ORDER BY day_of_week ASC, start_minutes ASC
	`
	var hours []model.WorkingHours
	err := r.db.SelectContext(ctx, &hours, query, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to list working hours: %w", err)
	}
	return hours, nil
}
