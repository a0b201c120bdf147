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

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	query := `
		INSERT INTO customers (
			id, salon_id, name, email, phone, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	customer.ID = uuid.New()
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		customer.ID,
		customer.SalonID,
		customer.Name,
		customer.Email,
		customer.Phone,
		customer.Notes,
		customer.CreatedAt,
		customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *customerRepository) Get(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	query := `
		SELECT id, salon_id, name, email, phone, notes, created_at, updated_at
		FROM customers
		WHERE id = $1
	`
	var customer model.Customer
	err := r.db.GetContext(ctx, &customer, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("customer", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &customer, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *model.Customer) error {
	query := `
		UPDATE customers
		SET name = $1, email = $2, phone = $3, notes = $4, updated_at = $5
		WHERE id = $6
	`
	customer.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		customer.Name,
		customer.Email,
		customer.Phone,
		customer.Notes,
		customer.UpdatedAt,
		customer.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("customer", nil)
	}
	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM customers
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("customer", nil)
	}
	return nil
}

func (r *customerRepository) List(ctx context.Context, salonID uuid.UUID, search string) ([]*model.Customer, error) {
	query := `
		SELECT id, salon_id, name, email, phone, notes, created_at, updated_at
		FROM customers
		WHERE salon_id = $1
	`
	args := []interface{}{salonID}
	if search != "" {
		query += ` AND (name ILIKE $2 OR email ILIKE $2 OR phone ILIKE $2)`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY name ASC`

	var customers []*model.Customer
	err := r.db.SelectContext(ctx, &customers, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}
