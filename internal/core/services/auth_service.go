package services

import (
	"context"
	"errors"

	"tdac-backend/internal/adapters/persistence/models"
	"tdac-backend/internal/adapters/persistence/repositories"
	"tdac-backend/internal/config"
	"tdac-backend/internal/core/domain"
	"tdac-backend/internal/pkg/jwt"
	"tdac-backend/internal/pkg/password"
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService handles admin authentication
type AuthService struct {
	adminRepo repositories.AdminRepository
	cfg       *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(adminRepo repositories.AdminRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		adminRepo: adminRepo,
		cfg:       cfg,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult represents a successful login
type LoginResult struct {
	Token string                `json:"token"`
	User  *models.AdminResponse `json:"user"`
}

// Login verifies admin credentials and issues a bearer token. Unknown
// email and wrong password both map to ErrInvalidCredentials so the
// response shape never reveals which one failed.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginResult, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(input.Password, admin.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(admin.ID, admin.Email, s.cfg.JWT.Secret, s.cfg.JWT.ExpiryMinutes)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token: token,
		User:  admin.ToResponse(),
	}, nil
}

// GetAdminByID returns the admin behind an authenticated token.
func (s *AuthService) GetAdminByID(ctx context.Context, id uint) (*models.AdminResponse, error) {
	admin, err := s.adminRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return admin.ToResponse(), nil
}
