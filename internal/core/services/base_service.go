package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sarrafix/pricing_backend/internal/apperrors"
	"github.com/sarrafix/pricing_backend/internal/core/domain"
	portsrepo "github.com/sarrafix/pricing_backend/internal/core/ports/repositories"
	"github.com/sarrafix/pricing_backend/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	userRepo portsrepo.UserReader
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// EnsureActiveUser is the capability check performed at the entry of every
// service operation: the acting identity must exist and be active. The
// identity is passed in explicitly rather than read from ambient state.
func (s *BaseService) EnsureActiveUser(ctx context.Context, actorUserID string) (*domain.User, error) {
	if actorUserID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	user, err := s.userRepo.FindUserByID(ctx, actorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown user %s", apperrors.ErrUnauthorized, actorUserID)
		}
		return nil, fmt.Errorf("failed to verify acting user: %w", err)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: user %s is deactivated", apperrors.ErrForbidden, actorUserID)
	}
	return user, nil
}
