package auth

import (
	"context"

	"github.com/coiffly/salon-api/internal/config"
	"github.com/coiffly/salon-api/internal/model"
	"github.com/coiffly/salon-api/internal/repository"
	"github.com/coiffly/salon-api/pkg/auth"
	apperrors "github.com/coiffly/salon-api/pkg/errors"
	"github.com/coiffly/salon-api/pkg/security"
)

type Service struct {
	staffRepo repository.StaffRepository
	jwtSvc    auth.JWTService
	hasher    security.PasswordHasher
	expiry    int
}

func NewService(staffRepo repository.StaffRepository, jwtSvc auth.JWTService, hasher security.PasswordHasher, cfg config.JWTConfig) *Service {
	return &Service{
		staffRepo: staffRepo,
		jwtSvc:    jwtSvc,
		hasher:    hasher,
		expiry:    cfg.ExpiryHours,
	}
}

// Login authenticates a staff member by email and password and issues
// an access token. Inactive accounts cannot log in.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	staff, err := s.staffRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized(nil)
		}
		return nil, err
	}
	if !staff.IsActive() {
		return nil, apperrors.Unauthorized(nil)
	}
	if err := s.hasher.Compare(staff.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	token, err := s.jwtSvc.GenerateAccessToken(staff.ID, staff.SalonID, staff.Email, staff.Role)
	if err != nil {
		return nil, err
	}
	return &model.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   s.expiry * 3600,
	}, nil
}
