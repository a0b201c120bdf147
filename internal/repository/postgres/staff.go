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

func (r *staffRepository) Create(ctx context.Context, staff *model.StaffMember) error {
	query := `
		INSERT INTO staff_members (
			id, salon_id, name, email, password_hash, role, status,
			accepts_online_bookings, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	staff.ID = uuid.New()
	staff.CreatedAt = time.Now()
	staff.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		staff.ID,
		staff.SalonID,
		staff.Name,
		staff.Email,
		staff.PasswordHash,
		staff.Role,
		staff.Status,
		staff.AcceptsOnlineBookings,
		staff.CreatedAt,
		staff.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create staff member: %w", err)
	}
	return nil
}

func (r *staffRepository) Get(ctx context.Context, id uuid.UUID) (*model.StaffMember, error) {
	query := `
		SELECT id, salon_id, name, email, password_hash, role, status,
			   accepts_online_bookings, created_at, updated_at
		FROM staff_members
		WHERE id = $1
	`
	var staff model.StaffMember
	err := r.db.GetContext(ctx, &staff, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("staff member", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get staff member: %w", err)
	}
	return &staff, nil
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*model.StaffMember, error) {
	query := `
		SELECT id, salon_id, name, email, password_hash, role, status,
			   accepts_online_bookings, created_at, updated_at
		FROM staff_members
		WHERE LOWER(email) = LOWER($1)
	`
	var staff model.StaffMember
	err := r.db.GetContext(ctx, &staff, query, email)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("staff member", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get staff member by email: %w", err)
	}
	return &staff, nil
}

func (r *staffRepository) Update(ctx context.Context, staff *model.StaffMember) error {
	query := `
		UPDATE staff_members
		SET name = $1, email = $2, role = $3, status = $4,
			accepts_online_bookings = $5, updated_at = $6
		WHERE id = $7
	`
	staff.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		staff.Name,
		staff.Email,
		staff.Role,
		staff.Status,
		staff.AcceptsOnlineBookings,
		staff.UpdatedAt,
		staff.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update staff member: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("staff member", nil)
	}
	return nil
}

func (r *staffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM staff_members
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete staff member: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("staff member", nil)
	}
	return nil
}

func (r *staffRepository) List(ctx context.Context, salonID uuid.UUID) ([]*model.StaffMember, error) {
	query := `
		SELECT id, salon_id, name, email, password_hash, role, status,
			   accepts_online_bookings, created_at, updated_at
		FROM staff_members
		WHERE salon_id = $1
		ORDER BY name ASC
	`
	var staff []*model.StaffMember
	err := r.db.SelectContext(ctx, &staff, query, salonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff members: %w", err)
	}
	return staff, nil
}

func (r *staffRepository) ListSkills(ctx context.Context, staffID uuid.UUID) ([]model.StaffSkill, error) {
	query := `
		SELECT staff_id, service_id, custom_duration_minutes, created_at
		FROM staff_skills
		WHERE staff_id = $1
	`
	var skills []model.StaffSkill
	err := r.db.SelectContext(ctx, &skills, query, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff skills: %w", err)
	}
	return skills, nil
}

func (r *staffRepository) UpsertSkill(ctx context.Context, skill *model.StaffSkill) error {
	query := `
		INSERT INTO staff_skills (staff_id, service_id, custom_duration_minutes, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (staff_id, service_id) DO UPDATE
		SET custom_duration_minutes = EXCLUDED.custom_duration_minutes
	`
	skill.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		skill.StaffID,
		skill.ServiceID,
		skill.CustomDurationMinutes,
		skill.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert staff skill: %w", err)
	}
	return nil
}

func (r *staffRepository) DeleteSkill(ctx context.Context, staffID, serviceID uuid.UUID) error {
	query := `
		DELETE FROM staff_skills
		WHERE staff_id = $1 AND service_id = $2
	`
	_, err := r.db.ExecContext(ctx, query, staffID, serviceID)
	if err != nil {
		return fmt.Errorf("failed to delete staff skill: %w", err)
	}
	return nil
}

// ListQualified returns the active staff members of a salon qualified
// for every one of the given services.
func (r *staffRepository) ListQualified(ctx context.Context, salonID uuid.UUID, serviceIDs []uuid.UUID) ([]*model.StaffMember, error) {
	if len(serviceIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT s.id, s.salon_id, s.name, s.email, s.password_hash, s.role, s.status,
			   s.accepts_online_bookings, s.created_at, s.updated_at
		FROM staff_members s
		JOIN staff_skills k ON k.staff_id = s.id
		WHERE s.salon_id = $1
		AND s.status = 'active'
		AND k.service_id = ANY($2)
		GROUP BY s.id, s.salon_id, s.name, s.email, s.password_hash, s.role, s.status,
				 s.accepts_online_bookings, s.created_at, s.updated_at
		HAVING COUNT(DISTINCT k.service_id) = $3
		ORDER BY s.name ASC
	`
	var staff []*model.StaffMember
	err := r.db.SelectContext(ctx, &staff, query, salonID, pq.Array(serviceIDs), len(serviceIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list qualified staff: %w", err)
	}
	return staff, nil
}
