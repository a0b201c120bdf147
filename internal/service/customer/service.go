package customer

import (
	"context"

	"github.com/google/uuid"

	"github.com/coiffly/salon-api/internal/model"
	"github.com/coiffly/salon-api/internal/repository"
)

type Service struct {
	repo repository.CustomerRepository
}

func NewService(repo repository.CustomerRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateCustomerRequest) (*model.Customer, error) {
	customer := &model.Customer{
		SalonID: req.SalonID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Notes:   req.Notes,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, customer *model.Customer) error {
	return s.repo.Update(ctx, customer)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, salonID uuid.UUID, search string) ([]*model.Customer, error) {
	return s.repo.List(ctx, salonID, search)
}
