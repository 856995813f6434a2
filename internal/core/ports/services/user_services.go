package services

import (
	"context"

	"github.com/sarrafix/pricing_backend/internal/core/domain"
	"github.com/sarrafix/pricing_backend/internal/dto"
)

// UserSvcFacade exposes user management. The role field is stored and
// returned as given but never differentiates permissions.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string, actorUserID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context, actorUserID string) ([]domain.User, error)
}

// AuthSvcFacade exposes authentication.
type AuthSvcFacade interface {
	// Login verifies credentials against an active user and returns a signed
	// bearer token together with the user.
	Login(ctx context.Context, req dto.LoginRequest) (string, *domain.User, error)
}
