package staff

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/coiffly/salon-api/internal/model"
	"github.com/coiffly/salon-api/internal/repository"
	apperrors "github.com/coiffly/salon-api/pkg/errors"
	"github.com/coiffly/salon-api/pkg/security"
)

type Service struct {
	repo             repository.StaffRepository
	workingHoursRepo repository.WorkingHoursRepository
	absenceRepo      repository.AbsenceRepository
	hasher           security.PasswordHasher
}

func NewService(
	repo repository.StaffRepository,
	workingHoursRepo repository.WorkingHoursRepository,
	absenceRepo repository.AbsenceRepository,
	hasher security.PasswordHasher,
) *Service {
	return &Service{
		repo:             repo,
		workingHoursRepo: workingHoursRepo,
		absenceRepo:      absenceRepo,
		hasher:           hasher,
	}
}

func (s *Service) Create(ctx context.Context, req *model.CreateStaffRequest) (*model.StaffMember, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	staff := &model.StaffMember{
		SalonID:               req.SalonID,
		Name:                  req.Name,
		Email:                 req.Email,
		PasswordHash:          hash,
		Role:                  req.Role,
		Status:                "active",
		AcceptsOnlineBookings: req.AcceptsOnlineBookings,
	}
	if err := s.repo.Create(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.StaffMember, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateStaffRequest) (*model.StaffMember, error) {
	staff, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		staff.Name = *req.Name
	}
	if req.Email != nil {
		staff.Email = *req.Email
	}
	if req.Role != nil {
		staff.Role = *req.Role
	}
	if req.Status != nil {
		staff.Status = *req.Status
	}
	if req.AcceptsOnlineBookings != nil {
		staff.AcceptsOnlineBookings = *req.AcceptsOnlineBookings
	}

	if err := s.repo.Update(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, salonID uuid.UUID) ([]*model.StaffMember, error) {
	return s.repo.List(ctx, salonID)
}

func (s *Service) ListSkills(ctx context.Context, staffID uuid.UUID) ([]model.StaffSkill, error) {
	return s.repo.ListSkills(ctx, staffID)
}

func (s *Service) UpsertSkill(ctx context.Context, staffID uuid.UUID, req *model.UpsertSkillRequest) (*model.StaffSkill, error) {
	skill := &model.StaffSkill{
		StaffID:               staffID,
		ServiceID:             req.ServiceID,
		CustomDurationMinutes: req.CustomDurationMinutes,
	}
	if err := s.repo.UpsertSkill(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

func (s *Service) DeleteSkill(ctx context.Context, staffID, serviceID uuid.UUID) error {
	return s.repo.DeleteSkill(ctx, staffID, serviceID)
}

func (s *Service) ListWorkingHours(ctx context.Context, staffID uuid.UUID) ([]model.WorkingHours, error) {
	return s.workingHoursRepo.ListForStaff(ctx, staffID)
}

func (s *Service) AddWorkingHours(ctx context.Context, req *model.CreateWorkingHoursRequest) (*model.WorkingHours, error) {
	if req.EndMinutes <= req.StartMinutes {
		return nil, apperrors.Validation("end_minutes must be after start_minutes", nil)
	}
	if (req.BreakStartMinutes == nil) != (req.BreakEndMinutes == nil) {
		return nil, apperrors.Validation("break start and end must be set together", nil)
	}
	if req.BreakStartMinutes != nil && *req.BreakEndMinutes <= *req.BreakStartMinutes {
		return nil, apperrors.Validation("break end must be after break start", nil)
	}

	row := &model.WorkingHours{
		StaffID:           req.StaffID,
		DayOfWeek:         req.DayOfWeek,
		StartMinutes:      req.StartMinutes,
		EndMinutes:        req.EndMinutes,
		BreakStartMinutes: req.BreakStartMinutes,
		BreakEndMinutes:   req.BreakEndMinutes,
		Label:             req.Label,
	}
	if err := s.workingHoursRepo.Create(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *Service) DeleteWorkingHours(ctx context.Context, id uuid.UUID) error {
	return s.workingHoursRepo.Delete(ctx, id)
}

func (s *Service) ListAbsences(ctx context.Context, staffID uuid.UUID, from, to time.Time) ([]model.Absence, error) {
	return s.absenceRepo.ListForStaff(ctx, staffID, from, to)
}

func (s *Service) AddAbsence(ctx context.Context, req *model.CreateAbsenceRequest) (*model.Absence, error) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, apperrors.Validation("start_date must be formatted as 2006-01-02", err)
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, apperrors.Validation("end_date must be formatted as 2006-01-02", err)
	}
	if end.Before(start) {
		return nil, apperrors.Validation("end_date must not be before start_date", nil)
	}

	absence := &model.Absence{
		StaffID:   req.StaffID,
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
	}
	if err := s.absenceRepo.Create(ctx, absence); err != nil {
		return nil, err
	}
	return absence, nil
}

func (s *Service) DeleteAbsence(ctx context.Context, id uuid.UUID) error {
	return s.absenceRepo.Delete(ctx, id)
}
