package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxPriceDigits and MaxPriceScale bound price values to NUMERIC(20,4).
const (
	MaxPriceDigits = 20
	MaxPriceScale  = 4
)

// Price is the priced value attached to a price type. At most one price row
// per price type may be current at any time; the partial unique index on
// prices(price_type_id) WHERE is_current enforces this in storage.
type Price struct {
	PriceID     string          `json:"priceID"`     // Primary Key (UUID)
	PriceTypeID string          `json:"priceTypeID"` // FK -> PriceType
	Price       decimal.Decimal `json:"price"`       // positive, 4 decimal places
	IsCurrent   bool            `json:"isCurrent"`
	AuditFields
}

// ComputeChangePercentage returns (new-old)/old*100 rounded to 4 decimal
// places, or nil when old is nil or zero (no meaningful percentage exists).
func ComputeChangePercentage(oldPrice *decimal.Decimal, newPrice decimal.Decimal) *decimal.Decimal {
	if oldPrice == nil || oldPrice.IsZero() {
		return nil
	}
	pct := newPrice.Sub(*oldPrice).Div(*oldPrice).Mul(decimal.NewFromInt(100)).Round(MaxPriceScale)
	return &pct
}

// PriceChangeNote builds the human-readable audit note recorded alongside a
// price transition.
func PriceChangeNote(oldPrice *decimal.Decimal, newPrice decimal.Decimal, actorName string) string {
	old := "N/A"
	if oldPrice != nil {
		old = oldPrice.String()
	}
	if actorName == "" {
		return fmt.Sprintf("Price updated from %s to %s", old, newPrice.String())
	}
	return fmt.Sprintf("Price updated from %s to %s by %s", old, newPrice.String(), actorName)
}
