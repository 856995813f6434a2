package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceTypeListing is the read model behind the price overview screen: one row
// per price type with its owning category and effective price, if any.
type PriceTypeListing struct {
	Category     Category         `json:"category"`
	PriceType    PriceType        `json:"priceType"`
	CurrentPrice *decimal.Decimal `json:"currentPrice,omitempty"`
	LastUpdated  *time.Time       `json:"lastUpdated,omitempty"`
}
