package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/coiffly/salon-api/internal/model"
	apperrors "github.com/coiffly/salon-api/pkg/errors"
)

func (r *serviceRepository) Create(ctx context.Context, service *model.Service) error {
	query := `
		INSERT INTO services (
			id, salon_id, name, description, duration_minutes,
			price_chf, tax_rate_percent, status, online_bookable,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	service.ID = uuid.New()
	service.CreatedAt = time.Now()
	service.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		service.ID,
		service.SalonID,
		service.Name,
		service.Description,
		service.DurationMinutes,
		service.PriceCHF,
		service.TaxRatePercent,
		service.Status,
		service.OnlineBookable,
		service.CreatedAt,
		service.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *serviceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	query := `
		SELECT id, salon_id, name, description, duration_minutes,
			   price_chf, tax_rate_percent, status, online_bookable,
			   created_at, updated_at
		FROM services
		WHERE id = $1
	`
	var service model.Service
	err := r.db.GetContext(ctx, &service, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("service", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &service, nil
}

func (r *serviceRepository) GetMany(ctx context.Context, ids []uuid.UUID) ([]*model.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, salon_id, name, description, duration_minutes,
			   price_chf, tax_rate_percent, status, online_bookable,
			   created_at, updated_at
		FROM services
		WHERE id = ANY($1)
	`
	var services []*model.Service
	err := r.db.SelectContext(ctx, &services, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get services: %w", err)
	}
	return services, nil
}

func (r *serviceRepository) Update(ctx context.Context, service *model.Service) error {
	query := `
		UPDATE services
		SET name = $1, description = $2, duration_minutes = $3,
			price_chf = $4, tax_rate_percent = $5, status = $6,
			online_bookable = $7, updated_at = $8
		WHERE id = $9
	`
	service.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		service.Name,
		service.Description,
		service.DurationMinutes,
		service.PriceCHF,
		service.TaxRatePercent,
		service.Status,
		service.OnlineBookable,
		service.UpdatedAt,
		service.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("service", nil)
	}
	return nil
}

func (r *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM services
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("service", nil)
	}
	return nil
}

func (r *serviceRepository) List(ctx context.Context, salonID uuid.UUID, onlyActive bool) ([]*model.Service, error) {
	query := `
		SELECT id, salon_id, name, description, duration_minutes,
			   price_chf, tax_rate_percent, status, online_bookable,
			   created_at, updated_at
		FROM services
		WHERE salon_id = $1
	`
	args := []interface{}{salonID}
	if onlyActive {
		query += " AND status = 'active'"
	}
	query += " ORDER BY name ASC"

	var services []*model.Service
	err := r.db.SelectContext(ctx, &services, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}
