package salon

import (
	"context"

	"github.com/google/uuid"

	"github.com/coiffly/salon-api/internal/config"
	"github.com/coiffly/salon-api/internal/model"
	"github.com/coiffly/salon-api/internal/repository"
	apperrors "github.com/coiffly/salon-api/pkg/errors"
)

type Service struct {
	repo    repository.SalonRepository
	booking config.BookingConfig
}

func NewService(repo repository.SalonRepository, booking config.BookingConfig) *Service {
	return &Service{repo: repo, booking: booking}
}

// Create registers a salon. Buffer minutes left out of the request are
// seeded from the configured defaults; an explicit zero stays zero.
func (s *Service) Create(ctx context.Context, req *model.CreateSalonRequest) (*model.Salon, error) {
	bufferBefore := s.booking.BufferBeforeMinutes
	if req.BufferBeforeMinutes != nil {
		bufferBefore = *req.BufferBeforeMinutes
	}
	bufferAfter := s.booking.BufferAfterMinutes
	if req.BufferAfterMinutes != nil {
		bufferAfter = *req.BufferAfterMinutes
	}

	salon := &model.Salon{
		Name:                req.Name,
		Address:             req.Address,
		Phone:               req.Phone,
		Email:               req.Email,
		Status:              "active",
		AutoConfirm:         req.AutoConfirm,
		BufferBeforeMinutes: bufferBefore,
		BufferAfterMinutes:  bufferAfter,
	}
	if err := s.repo.Create(ctx, salon); err != nil {
		return nil, err
	}
	return salon, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Salon, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, salon *model.Salon) error {
	return s.repo.Update(ctx, salon)
}

func (s *Service) ListOpeningHours(ctx context.Context, salonID uuid.UUID) ([]model.OpeningHours, error) {
	return s.repo.ListOpeningHours(ctx, salonID)
}

// UpsertOpeningHours replaces the opening interval for one weekday.
func (s *Service) UpsertOpeningHours(ctx context.Context, salonID uuid.UUID, req *model.UpsertOpeningHoursRequest) (*model.OpeningHours, error) {
	if req.CloseMinutes <= req.OpenMinutes {
		return nil, apperrors.Validation("close_minutes must be after open_minutes", nil)
	}
	row := &model.OpeningHours{
		SalonID:      salonID,
		DayOfWeek:    req.DayOfWeek,
		OpenMinutes:  req.OpenMinutes,
		CloseMinutes: req.CloseMinutes,
		IsActive:     req.IsActive,
	}
	if err := s.repo.UpsertOpeningHours(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *Service) DeleteOpeningHours(ctx context.Context, salonID uuid.UUID, dayOfWeek int) error {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return apperrors.Validation("day_of_week must be between 0 and 6", nil)
	}
	return s.repo.DeleteOpeningHours(ctx, salonID, dayOfWeek)
}
