package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/sarrafix/pricing_backend/internal/apperrors"
	"github.com/sarrafix/pricing_backend/internal/core/domain"
	portsrepo "github.com/sarrafix/pricing_backend/internal/core/ports/repositories"
	portssvc "github.com/sarrafix/pricing_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

const defaultHistoryLimit = 50

// pricingService implements the PricingSvcFacade interface. It is the single
// sanctioned write path for prices: history recording lives here and in the
// repository transaction it drives, not in any generic save hook.
type pricingService struct {
	BaseService
	pricingRepo portsrepo.PricingRepositoryFacade
}

// NewPricingService creates a new pricing service with the provided dependencies
func NewPricingService(pricingRepo portsrepo.PricingRepositoryFacade, userRepo portsrepo.UserReader) portssvc.PricingSvcFacade {
	return &pricingService{
		BaseService: BaseService{userRepo: userRepo},
		pricingRepo: pricingRepo,
	}
}

// Ensure pricingService implements the PricingSvcFacade interface
var _ portssvc.PricingSvcFacade = (*pricingService)(nil)

// parsePrice validates a raw price string: a positive decimal with at most 4
// fractional digits and at most 20 significant digits.
func parsePrice(raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: price must be a decimal number", apperrors.ErrValidation)
	}
	if value.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: price must be greater than zero", apperrors.ErrValidation)
	}
	if value.Exponent() < -domain.MaxPriceScale {
		return decimal.Zero, fmt.Errorf("%w: price can have at most %d decimal places", apperrors.ErrValidation, domain.MaxPriceScale)
	}
	if value.NumDigits() > domain.MaxPriceDigits {
		return decimal.Zero, fmt.Errorf("%w: price can have at most %d digits", apperrors.ErrValidation, domain.MaxPriceDigits)
	}
	return value, nil
}

// SetPrice applies one price write for a price type.
func (s *pricingService) SetPrice(ctx context.Context, priceTypeID string, rawPrice string, actorUserID string) (*domain.Price, error) {
	actor, err := s.EnsureActiveUser(ctx, actorUserID)
	if err != nil {
		return nil, err
	}

	value, err := parsePrice(rawPrice)
	if err != nil {
		return nil, err
	}

	priceType, err := s.pricingRepo.FindPriceTypeByID(ctx, priceTypeID)
	if err != nil {
		return nil, err
	}
	if priceType.BaseCurrency == priceType.TargetCurrency {
		return nil, fmt.Errorf("%w: base and target currencies cannot be the same", apperrors.ErrValidation)
	}

	price, history, err := s.pricingRepo.SetCurrentPrice(ctx, priceTypeID, value, actor.UserID, actor.Name, time.Now().UTC())
	if err != nil {
		s.LogError(ctx, err, "Failed to set price",
			slog.String("price_type_id", priceTypeID),
			slog.String("price", value.String()))
		return nil, err
	}

	if history != nil {
		s.LogInfo(ctx, "Price updated",
			slog.String("price_type_id", priceTypeID),
			slog.String("old_price", history.OldPrice.String()),
			slog.String("new_price", history.NewPrice.String()))
	} else {
		s.LogInfo(ctx, "Price set",
			slog.String("price_type_id", priceTypeID),
			slog.String("price", price.Price.String()))
	}
	return price, nil
}

// SetCategoryPrices applies the bulk per-category price form in one transaction.
func (s *pricingService) SetCategoryPrices(ctx context.Context, categoryID string, rawPrices map[string]string, actorUserID string) ([]domain.PriceHistory, error) {
	actor, err := s.EnsureActiveUser(ctx, actorUserID)
	if err != nil {
		return nil, err
	}
	if len(rawPrices) == 0 {
		return []domain.PriceHistory{}, nil
	}

	// Deterministic order keeps row lock acquisition stable across
	// concurrent submissions.
	priceTypeIDs := make([]string, 0, len(rawPrices))
	for id := range rawPrices {
		priceTypeIDs = append(priceTypeIDs, id)
	}
	sort.Strings(priceTypeIDs)

	updates := make([]portsrepo.PriceUpdate, 0, len(rawPrices))
	for _, priceTypeID := range priceTypeIDs {
		value, err := parsePrice(rawPrices[priceTypeID])
		if err != nil {
			return nil, fmt.Errorf("price type %s: %w", priceTypeID, err)
		}
		priceType, err := s.pricingRepo.FindPriceTypeByID(ctx, priceTypeID)
		if err != nil {
			return nil, err
		}
		if priceType.CategoryID != categoryID {
			return nil, fmt.Errorf("%w: price type %s does not belong to this category", apperrors.ErrValidation, priceTypeID)
		}
		if priceType.BaseCurrency == priceType.TargetCurrency {
			return nil, fmt.Errorf("%w: base and target currencies cannot be the same for %s", apperrors.ErrValidation, priceType.Name)
		}
		updates = append(updates, portsrepo.PriceUpdate{PriceTypeID: priceTypeID, NewPrice: value})
	}

	history, err := s.pricingRepo.SetCurrentPrices(ctx, updates, actor.UserID, actor.Name, time.Now().UTC())
	if err != nil {
		s.LogError(ctx, err, "Failed to set category prices", slog.String("category_id", categoryID))
		return nil, err
	}

	s.LogInfo(ctx, "Category prices updated",
		slog.String("category_id", categoryID),
		slog.Int("submitted", len(updates)),
		slog.Int("changed", len(history)))
	return history, nil
}

// GetCurrentPrice returns the unique current price row of a price type.
func (s *pricingService) GetCurrentPrice(ctx context.Context, priceTypeID string, actorUserID string) (*domain.Price, error) {
	if _, err := s.EnsureActiveUser(ctx, actorUserID); err != nil {
		return nil, err
	}
	return s.pricingRepo.FindCurrentPrice(ctx, priceTypeID)
}

// ListPriceTypes returns every price type with its category and current price.
func (s *pricingService) ListPriceTypes(ctx context.Context, actorUserID string) ([]domain.PriceTypeListing, error) {
	if _, err := s.EnsureActiveUser(ctx, actorUserID); err != nil {
		return nil, err
	}
	listings, err := s.pricingRepo.ListPriceTypesWithCurrentPrice(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list price types")
		return nil, err
	}
	if listings == nil {
		return []domain.PriceTypeListing{}, nil
	}
	return listings, nil
}

// ListPriceHistory returns the newest history entries for a price type.
func (s *pricingService) ListPriceHistory(ctx context.Context, priceTypeID string, limit int, actorUserID string) ([]domain.PriceHistory, error) {
	if _, err := s.EnsureActiveUser(ctx, actorUserID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if _, err := s.pricingRepo.FindPriceTypeByID(ctx, priceTypeID); err != nil {
		return nil, err
	}
	history, err := s.pricingRepo.ListPriceHistory(ctx, priceTypeID, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list price history", slog.String("price_type_id", priceTypeID))
		return nil, err
	}
	if history == nil {
		return []domain.PriceHistory{}, nil
	}
	return history, nil
}
