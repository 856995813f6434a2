package repositories

import (
	"context"
	"time"

	"github.com/sarrafix/pricing_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PriceUpdate is one entry of a bulk price submission.
type PriceUpdate struct {
	PriceTypeID string
	NewPrice    decimal.Decimal
}

// PricingReader defines read operations for price types, prices and history
type PricingReader interface {
	// FindPriceTypeByID retrieves a single price type.
	FindPriceTypeByID(ctx context.Context, priceTypeID string) (*domain.PriceType, error)

	// FindCurrentPrice retrieves the unique current price row for a price
	// type, or apperrors.ErrNotFound when no price has been set yet.
	FindCurrentPrice(ctx context.Context, priceTypeID string) (*domain.Price, error)

	// ListPriceTypesWithCurrentPrice retrieves every price type joined with
	// its category and current price, ordered by category name, action, name.
	ListPriceTypesWithCurrentPrice(ctx context.Context) ([]domain.PriceTypeListing, error)

	// ListPriceHistory retrieves the newest history rows for a price type,
	// most recent first.
	ListPriceHistory(ctx context.Context, priceTypeID string, limit int) ([]domain.PriceHistory, error)
}

// PricingWriter defines the sanctioned price mutation entry points. Each call
// runs read-compare-write inside one transaction: the current row is locked,
// a history row is appended when the value changes, and the price row is
// created or updated in place. No other code path writes prices or history.
type PricingWriter interface {
	// SetCurrentPrice applies one price write for a price type. It returns
	// the resulting current price row and the history row it produced, which
	// is nil when this was the first price ever set or a no-op.
	SetCurrentPrice(ctx context.Context, priceTypeID string, newPrice decimal.Decimal, actorUserID, actorName string, now time.Time) (*domain.Price, *domain.PriceHistory, error)

	// SetCurrentPrices applies several price writes in a single transaction;
	// if any entry fails, none are persisted.
	SetCurrentPrices(ctx context.Context, updates []PriceUpdate, actorUserID, actorName string, now time.Time) ([]domain.PriceHistory, error)
}

// PricingRepositoryFacade combines all pricing-related repository interfaces
type PricingRepositoryFacade interface {
	PricingReader
	PricingWriter
}

// PricingRepositoryWithTx extends PricingRepositoryFacade with transaction capabilities
type PricingRepositoryWithTx interface {
	PricingRepositoryFacade
	TransactionManager
}
