package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sarrafix/pricing_backend/internal/apperrors"
	"github.com/sarrafix/pricing_backend/internal/core/domain"
	portsrepo "github.com/sarrafix/pricing_backend/internal/core/ports/repositories"
	portssvc "github.com/sarrafix/pricing_backend/internal/core/ports/services"
	"github.com/sarrafix/pricing_backend/internal/dto"
	"github.com/sarrafix/pricing_backend/internal/utils"
)

// userService implements the UserSvcFacade interface
type userService struct {
	BaseService
	users portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service with the provided dependencies
func NewUserService(users portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{
		BaseService: BaseService{userRepo: users},
		users:       users,
	}
}

// Ensure userService implements the UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser creates a staff user. The role is stored as given but does not
// gate any operation.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	role := domain.UserRole(req.Role)
	if req.Role == "" {
		role = domain.RoleExchangeManager
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %s", apperrors.ErrValidation, req.Role)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	userID := uuid.NewString()
	if creatorUserID == "" {
		// Bootstrap path (create_admin command): no acting user exists yet,
		// so the new account records itself as creator.
		creatorUserID = userID
	}

	user := domain.User{
		UserID:       userID,
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.users.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("username", req.Username))
		return nil, err
	}

	s.LogInfo(ctx, "User created",
		slog.String("user_id", user.UserID),
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)))
	return &user, nil
}

// GetUserByID retrieves a user by primary key.
func (s *userService) GetUserByID(ctx context.Context, userID string, actorUserID string) (*domain.User, error) {
	if _, err := s.EnsureActiveUser(ctx, actorUserID); err != nil {
		return nil, err
	}
	return s.users.FindUserByID(ctx, userID)
}

// GetUserByUsername retrieves a user by exact username.
func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.FindUserByUsername(ctx, username)
}

// ListUsers retrieves all users.
func (s *userService) ListUsers(ctx context.Context, actorUserID string) ([]domain.User, error) {
	if _, err := s.EnsureActiveUser(ctx, actorUserID); err != nil {
		return nil, err
	}
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, err
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}
