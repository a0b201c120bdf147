package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/coiffly/salon-api/internal/model"
	apperrors "github.com/coiffly/salon-api/pkg/errors"
)

func (r *salonRepository) Create(ctx context.Context, salon *model.Salon) error {
	query := `
		INSERT INTO salons (
			id, name, address, phone, email, status,
			auto_confirm, buffer_before_minutes, buffer_after_minutes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	salon.ID = uuid.New()
	salon.CreatedAt = time.Now()
	salon.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		salon.ID,
		salon.Name,
		salon.Address,
		salon.Phone,
		salon.Email,
		salon.Status,
		salon.AutoConfirm,
		salon.BufferBeforeMinutes,
		salon.BufferAfterMinutes,
		salon.CreatedAt,
		salon.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create salon: %w", err)
	}
	return nil
}

func (r *salonRepository) Get(ctx context.Context, id uuid.UUID) (*model.Salon, error) {
	query := `
		SELECT id, name, address, phone, email, status,
			   auto_confirm, buffer_before_minutes, buffer_after_minutes,
			   created_at, updated_at
		FROM salons
		WHERE id = $1
	`
	var salon model.Salon
	err := r.db.GetContext(ctx, &salon, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("salon", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get salon: %w", err)
	}
	return &salon, nil
}

func (r *salonRepository) Update(ctx context.Context, salon *model.Salon) error {
	query := `
		UPDATE salons
		SET name = $1, address = $2, phone = $3, email = $4, status = $5,
			auto_confirm = $6, buffer_before_minutes = $7, buffer_after_minutes = $8,
			updated_at = $9
		WHERE id = $10
	`
	salon.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		salon.Name,
		salon.Address,
		salon.Phone,
		salon.Email,
		salon.Status,
		salon.AutoConfirm,
		salon.BufferBeforeMinutes,
		salon.BufferAfterMinutes,
		salon.UpdatedAt,
		salon.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update salon: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("salon", nil)
	}
	return nil
}

func (r *salonRepository) ListOpeningHours(ctx context.Context, salonID uuid.UUID) ([]model.OpeningHours, error) {
	query := `
		SELECT id, salon_id, day_of_week, open_minutes, close_minutes, is_active,
			   created_at, updated_at
		FROM opening_hours
		WHERE salon_id = $1
		ORDER BY day_of_week ASC
	`
	var rows []model.OpeningHours
	err := r.db.SelectContext(ctx, &rows, query, salonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list opening hours: %w", err)
	}
	return rows, nil
}

func (r *salonRepository) UpsertOpeningHours(ctx context.Context, row *model.OpeningHours) error {
	query := `
		INSERT INTO opening_hours (
			id, salon_id, day_of_week, open_minutes, close_minutes, is_active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (salon_id, day_of_week) DO UPDATE
		SET open_minutes = EXCLUDED.open_minutes,
			close_minutes = EXCLUDED.close_minutes,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at
	`
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	row.CreatedAt = time.Now()
	row.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		row.ID,
		row.SalonID,
		row.DayOfWeek,
		row.OpenMinutes,
		row.CloseMinutes,
		row.IsActive,
		row.CreatedAt,
		row.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert opening hours: %w", err)
	}
	return nil
}

func (r *salonRepository) DeleteOpeningHours(ctx context.Context, salonID uuid.UUID, dayOfWeek int) error {
	query := `
		DELETE FROM opening_hours
		WHERE salon_id = $1 AND day_of_week = $2
	`
	_, err := r.db.ExecContext(ctx, query, salonID, dayOfWeek)
	if err != nil {
		return fmt.Errorf("failed to delete opening hours: %w", err)
	}
	return nil
}
