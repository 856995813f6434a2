package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sarrafix/pricing_backend/internal/apperrors"
	"github.com/sarrafix/pricing_backend/internal/core/domain"
	"github.com/sarrafix/pricing_backend/internal/core/ports/services"
	coreservices "github.com/sarrafix/pricing_backend/internal/core/services"
	"github.com/sarrafix/pricing_backend/internal/dto"
	"github.com/sarrafix/pricing_backend/internal/platform/config"
	"github.com/sarrafix/pricing_backend/internal/repositories/database/pgsql"
	"github.com/sarrafix/pricing_backend/pkg/database"
)

// create_admin bootstraps the first superuser account. This is the only way
// to register a user without an already authenticated identity; the HTTP API
// requires a logged-in active user for user creation.
func main() {
	var (
		username = flag.String("username", "", "username of the superuser (required)")
		password = flag.String("password", "", "password of the superuser (required)")
		name     = flag.String("name", "Administrator", "display name of the superuser")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: create_admin -username <username> -password <password> [-name <name>]")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	repos := pgsql.NewRepositoryProvider(dbPool)
	userService := coreservices.NewUserService(repos.UserRepo)

	user, err := createSuperuser(ctx, userService, *username, *password, *name)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Username already taken", slog.String("username", *username))
		} else {
			logger.Error("Failed to create superuser", slog.String("error", err.Error()))
		}
		os.Exit(1)
	}

	logger.Info("Superuser created",
		slog.String("user_id", user.UserID),
		slog.String("username", user.Username))
}

func createSuperuser(ctx context.Context, userService services.UserSvcFacade, username, password, name string) (*domain.User, error) {
	req := dto.CreateUserRequest{
		Username: username,
		Password: password,
		Name:     name,
		Role:     string(domain.RoleSuperuser),
	}
	// No acting user exists yet; the new account records itself as creator.
	return userService.CreateUser(ctx, req, "")
}
