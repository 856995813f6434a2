package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sarrafix/pricing_backend/internal/apperrors"
	"github.com/sarrafix/pricing_backend/internal/core/domain"
	portsrepo "github.com/sarrafix/pricing_backend/internal/core/ports/repositories"
	portssvc "github.com/sarrafix/pricing_backend/internal/core/ports/services"
	"github.com/sarrafix/pricing_backend/internal/dto"
	"github.com/sarrafix/pricing_backend/internal/utils"
)

// categoryService implements the CategorySvcFacade interface
type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new category service with the provided dependencies
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade, userRepo portsrepo.UserReader) portssvc.CategorySvcFacade {
	return &categoryService{
		BaseService:  BaseService{userRepo: userRepo},
		categoryRepo: categoryRepo,
	}
}

// Ensure categoryService implements the CategorySvcFacade interface
var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

// ListCategories retrieves all categories with nested price types and prices.
func (s *categoryService) ListCategories(ctx context.Context, actorUserID string) ([]domain.Category, error) {
	if _, err := s.EnsureActiveUser(ctx, actorUserID); err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, err
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

// CreateCategory creates a category together with its child price types
// in one transaction.
func (s *categoryService) CreateCategory(ctx context.Context, req dto.SaveCategoryRequest, actorUserID string) (*domain.Category, error) {
	actor, err := s.EnsureActiveUser(ctx, actorUserID)
	if err != nil {
		return nil, err
	}

	name, err := s.validateCategoryName(ctx, req.Name, "")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	category := domain.Category{
		CategoryID:  uuid.NewString(),
		Name:        name,
		Slug:        utils.Slugify(name),
		Description: strings.TrimSpace(req.Description),
		IsActive:    boolOrDefault(req.IsActive, true),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	upserts, deleteIDs, err := s.buildPriceTypeChanges(category.CategoryID, req.PriceTypes, actor.UserID, now)
	if err != nil {
		return nil, err
	}
	if len(deleteIDs) > 0 {
		// A fresh category has no children to remove yet.
		return nil, fmt.Errorf("%w: cannot delete price types while creating a category", apperrors.ErrValidation)
	}

	if err := s.categoryRepo.SaveCategoryUnit(ctx, category, upserts, nil); err != nil {
		s.LogError(ctx, err, "Failed to create category", slog.String("category_name", category.Name))
		return nil, err
	}

	category.PriceTypes = upserts
	s.LogInfo(ctx, "Category created",
		slog.String("category_id", category.CategoryID),
		slog.String("category_name", category.Name),
		slog.Int("price_types", len(upserts)))
	return &category, nil
}

// UpdateCategory edits a category and its children in one transaction.
func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.SaveCategoryRequest, actorUserID string) (*domain.Category, error) {
	actor, err := s.EnsureActiveUser(ctx, actorUserID)
	if err != nil {
		return nil, err
	}

	existing, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	name, err := s.validateCategoryName(ctx, req.Name, categoryID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	category := domain.Category{
		CategoryID: categoryID,
		Name:       name,
		// The slug was derived on first persist and is never recomputed.
		Slug:        existing.Slug,
		Description: strings.TrimSpace(req.Description),
		IsActive:    boolOrDefault(req.IsActive, existing.IsActive),
		AuditFields: domain.AuditFields{
			CreatedAt:     existing.CreatedAt,
			CreatedBy:     existing.CreatedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	upserts, deleteIDs, err := s.buildPriceTypeChanges(categoryID, req.PriceTypes, actor.UserID, now)
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.SaveCategoryUnit(ctx, category, upserts, deleteIDs); err != nil {
		s.LogError(ctx, err, "Failed to update category", slog.String("category_id", categoryID))
		return nil, err
	}

	category.PriceTypes = upserts
	s.LogInfo(ctx, "Category updated",
		slog.String("category_id", categoryID),
		slog.Int("upserted_price_types", len(upserts)),
		slog.Int("deleted_price_types", len(deleteIDs)))
	return &category, nil
}

// DeleteCategory removes a category, cascading to its children.
func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string, actorUserID string) error {
	if _, err := s.EnsureActiveUser(ctx, actorUserID); err != nil {
		return err
	}
	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete category", slog.String("category_id", categoryID))
		}
		return err
	}
	s.LogInfo(ctx, "Category deleted", slog.String("category_id", categoryID))
	return nil
}

// validateCategoryName trims the name, rejects empty values and enforces the
// exact-match uniqueness rule, excluding excludeID when editing.
func (s *categoryService) validateCategoryName(ctx context.Context, rawName, excludeID string) (string, error) {
	name := strings.TrimSpace(rawName)
	if name == "" {
		return "", fmt.Errorf("%w: category name cannot be empty", apperrors.ErrValidation)
	}
	other, err := s.categoryRepo.FindCategoryByName(ctx, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return name, nil
		}
		return "", fmt.Errorf("failed to check category name uniqueness: %w", err)
	}
	if other.CategoryID != excludeID {
		return "", fmt.Errorf("%w: category name %s already exists", apperrors.ErrDuplicate, name)
	}
	return name, nil
}

// buildPriceTypeChanges turns the submitted child slots into upserts and
// deletes. Entirely blank slots are unused optional rows and are discarded;
// filled slots are validated individually.
func (s *categoryService) buildPriceTypeChanges(categoryID string, payloads []dto.PriceTypePayload, actorUserID string, now time.Time) ([]domain.PriceType, []string, error) {
	upserts := []domain.PriceType{}
	deleteIDs := []string{}
	seenNames := map[string]bool{}

	for _, payload := range payloads {
		if payload.IsBlank() {
			continue
		}
		if payload.Delete {
			// A delete marker is only meaningful for a persisted child.
			if payload.PriceTypeID != "" {
				deleteIDs = append(deleteIDs, payload.PriceTypeID)
			}
			continue
		}

		name := strings.TrimSpace(payload.Name)
		if name == "" {
			return nil, nil, fmt.Errorf("%w: price type name cannot be empty", apperrors.ErrValidation)
		}
		if seenNames[name] {
			return nil, nil, fmt.Errorf("%w: price type name %s appears more than once", apperrors.ErrValidation, name)
		}
		seenNames[name] = true

		action := domain.PriceTypeAction(payload.Action)
		if !action.IsValid() {
			return nil, nil, fmt.Errorf("%w: action for %s must be buy or sell", apperrors.ErrValidation, name)
		}

		base := strings.ToUpper(strings.TrimSpace(payload.BaseCurrency))
		target := strings.ToUpper(strings.TrimSpace(payload.TargetCurrency))
		if base == "" || target == "" {
			return nil, nil, fmt.Errorf("%w: base and target currencies are required for %s", apperrors.ErrValidation, name)
		}
		if base == target {
			return nil, nil, fmt.Errorf("%w: base and target currencies cannot be the same for %s", apperrors.ErrValidation, name)
		}

		priceTypeID := payload.PriceTypeID
		if priceTypeID == "" {
			priceTypeID = uuid.NewString()
		}
		upserts = append(upserts, domain.PriceType{
			PriceTypeID:    priceTypeID,
			CategoryID:     categoryID,
			Name:           name,
			Action:         action,
			BaseCurrency:   base,
			TargetCurrency: target,
			Description:    strings.TrimSpace(payload.Description),
			IsActive:       boolOrDefault(payload.IsActive, true),
			AuditFields: domain.AuditFields{
				// Created fields only take effect on insert; the upsert
				// leaves them untouched for existing rows.
				CreatedAt:     now,
				CreatedBy:     actorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorUserID,
			},
		})
	}
	return upserts, deleteIDs, nil
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
