package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sarrafix/pricing_backend/internal/apperrors"
	"github.com/sarrafix/pricing_backend/internal/core/domain"
	portsrepo "github.com/sarrafix/pricing_backend/internal/core/ports/repositories"
	portssvc "github.com/sarrafix/pricing_backend/internal/core/ports/services"
	"github.com/sarrafix/pricing_backend/internal/dto"
	"github.com/sarrafix/pricing_backend/internal/platform/config"
	"github.com/sarrafix/pricing_backend/internal/utils"
)

// authService implements the AuthSvcFacade interface
type authService struct {
	BaseService
	users portsrepo.UserReader
	cfg   *config.Config
}

// NewAuthService creates a new auth service with the provided dependencies
func NewAuthService(users portsrepo.UserReader, cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{
		BaseService: BaseService{userRepo: users},
		users:       users,
		cfg:         cfg,
	}
}

// Ensure authService implements the AuthSvcFacade interface
var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies the given credentials and returns a signed bearer token for
// the user. Unknown usernames and wrong passwords produce the same error so
// the response does not reveal which part was wrong.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (string, *domain.User, error) {
	user, err := s.users.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to look up user for login", slog.String("username", req.Username))
		return "", nil, err
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return "", nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	if !user.IsActive {
		return "", nil, fmt.Errorf("%w: user account is deactivated", apperrors.ErrForbidden)
	}

	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign token", slog.String("user_id", user.UserID))
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return token, user, nil
}
