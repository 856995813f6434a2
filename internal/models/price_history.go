package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceHistory is the append-only storage record of a price transition.
type PriceHistory struct {
	PriceHistoryID   string           `json:"priceHistoryID"` // Primary Key (UUID)
	PriceTypeID      string           `json:"priceTypeID"`    // FK -> price_types, ON DELETE CASCADE
	OldPrice         *decimal.Decimal `json:"oldPrice,omitempty"`
	NewPrice         decimal.Decimal  `json:"newPrice"`
	ChangePercentage *decimal.Decimal `json:"changePercentage,omitempty"` // NUMERIC(20,4)
	ChangedAt        time.Time        `json:"changedAt"`
	Notes            *string          `json:"notes,omitempty"`
}
