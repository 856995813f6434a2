package services

import (
	"context"

	"github.com/sarrafix/pricing_backend/internal/core/domain"
)

// PricingSvcFacade exposes the sanctioned price operations. SetPrice is the
// single entry point through which every price-editing surface writes prices;
// history recording happens inside it, never as a side effect of a generic
// save path.
type PricingSvcFacade interface {
	// SetPrice parses rawPrice and applies it to the price type: first write
	// creates the current row, an unchanged value is a silent no-op, a
	// changed value appends a history row and updates the row in place.
	SetPrice(ctx context.Context, priceTypeID string, rawPrice string, actorUserID string) (*domain.Price, error)

	// SetCategoryPrices applies the per-category bulk form: rawPrices maps
	// price type IDs of the category to raw price strings. All entries are
	// validated first and applied in one transaction.
	SetCategoryPrices(ctx context.Context, categoryID string, rawPrices map[string]string, actorUserID string) ([]domain.PriceHistory, error)

	// GetCurrentPrice returns the unique current price row of a price type,
	// or apperrors.ErrNotFound when no price has been set yet.
	GetCurrentPrice(ctx context.Context, priceTypeID string, actorUserID string) (*domain.Price, error)

	// ListPriceTypes returns every price type with its category and current
	// price or absent marker.
	ListPriceTypes(ctx context.Context, actorUserID string) ([]domain.PriceTypeListing, error)

	// ListPriceHistory returns the newest history entries for a price type.
	ListPriceHistory(ctx context.Context, priceTypeID string, limit int, actorUserID string) ([]domain.PriceHistory, error)
}
