package repositories

import (
	"context"

	"github.com/sarrafix/pricing_backend/internal/core/domain"
)

// CategoryReader defines read operations for category data
type CategoryReader interface {
	// FindCategoryByID retrieves a single category without its children.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// FindCategoryByName retrieves a category by exact (case-sensitive) name.
	FindCategoryByName(ctx context.Context, name string) (*domain.Category, error)

	// ListCategories retrieves all categories ordered by name, each with its
	// price types and their current prices attached.
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// CategoryWriter defines write operations for category data.
// SaveCategoryUnit is the one sanctioned entry point for the combined
// category-plus-children workflow: the category write, the child upserts and
// the child deletes commit as a single transaction or not at all.
type CategoryWriter interface {
	SaveCategoryUnit(ctx context.Context, category domain.Category, upserts []domain.PriceType, deletePriceTypeIDs []string) error

	// DeleteCategory removes a category; price types, prices and history
	// cascade at the storage layer.
	DeleteCategory(ctx context.Context, categoryID string) error
}

// CategoryRepositoryFacade combines all category-related repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}

// CategoryRepositoryWithTx extends CategoryRepositoryFacade with transaction capabilities
type CategoryRepositoryWithTx interface {
	CategoryRepositoryFacade
	TransactionManager
}
