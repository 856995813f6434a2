package services

import (
	"context"

	"github.com/sarrafix/pricing_backend/internal/core/domain"
	"github.com/sarrafix/pricing_backend/internal/dto"
)

// CategorySvcFacade exposes the category maintenance workflow. Every
// operation takes the acting user's ID explicitly; the service verifies the
// actor exists and is active before doing anything.
type CategorySvcFacade interface {
	// ListCategories returns all categories ordered by name, with nested
	// price types and their current prices.
	ListCategories(ctx context.Context, actorUserID string) ([]domain.Category, error)

	// CreateCategory creates a category together with its child price types
	// in one transaction. Blank child slots are discarded.
	CreateCategory(ctx context.Context, req dto.SaveCategoryRequest, actorUserID string) (*domain.Category, error)

	// UpdateCategory edits a category and its children in one transaction:
	// child upserts and deletes commit atomically with the category write.
	UpdateCategory(ctx context.Context, categoryID string, req dto.SaveCategoryRequest, actorUserID string) (*domain.Category, error)

	// DeleteCategory removes a category, cascading to its price types,
	// prices and price history.
	DeleteCategory(ctx context.Context, categoryID string, actorUserID string) error
}
