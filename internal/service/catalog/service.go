package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/coiffly/salon-api/internal/model"
	"github.com/coiffly/salon-api/internal/repository"
	apperrors "github.com/coiffly/salon-api/pkg/errors"
)

const (
	listCacheTTL = 2 * time.Minute
)

// Service manages the bookable service catalog. The public list is
// read on every availability page load, so it sits behind a short
// in-process cache invalidated on writes.
type Service struct {
	repo  repository.ServiceRepository
	cache *gocache.Cache
}

func NewService(repo repository.ServiceRepository) *Service {
	return &Service{
		repo:  repo,
		cache: gocache.New(listCacheTTL, 5*time.Minute),
	}
}

func (s *Service) Create(ctx context.Context, req *model.CreateServiceRequest) (*model.Service, error) {
	svc := &model.Service{
		SalonID:         req.SalonID,
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		PriceCHF:        req.PriceCHF,
		TaxRatePercent:  req.TaxRatePercent,
		Status:          "active",
		OnlineBookable:  req.OnlineBookable,
	}
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, err
	}
	s.invalidate(req.SalonID)
	return svc, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateServiceRequest) (*model.Service, error) {
	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes < 5 {
			return nil, apperrors.Validation("duration_minutes must be at least 5", nil)
		}
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.PriceCHF != nil {
		svc.PriceCHF = *req.PriceCHF
	}
	if req.TaxRatePercent != nil {
		svc.TaxRatePercent = *req.TaxRatePercent
	}
	if req.Status != nil {
		svc.Status = *req.Status
	}
	if req.OnlineBookable != nil {
		svc.OnlineBookable = *req.OnlineBookable
	}

	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, err
	}
	s.invalidate(svc.SalonID)
	return svc, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(svc.SalonID)
	return nil
}

func (s *Service) List(ctx context.Context, salonID uuid.UUID, onlyActive bool) ([]*model.Service, error) {
	key := listKey(salonID, onlyActive)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]*model.Service), nil
	}

	services, err := s.repo.List(ctx, salonID, onlyActive)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, services, listCacheTTL)
	return services, nil
}

func (s *Service) invalidate(salonID uuid.UUID) {
	s.cache.Delete(listKey(salonID, true))
	s.cache.Delete(listKey(salonID, false))
}

func listKey(salonID uuid.UUID, onlyActive bool) string {
	return fmt.Sprintf("services:%s:%t", salonID, onlyActive)
}
