package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceHistory is an immutable audit record of one price transition for a
// price type. OldPrice is nil for the very first price ever set;
// ChangePercentage is nil when OldPrice is nil or zero. Rows are appended by
// the pricing service and never updated or deleted by application logic.
type PriceHistory struct {
	PriceHistoryID   string           `json:"priceHistoryID"` // Primary Key (UUID)
	PriceTypeID      string           `json:"priceTypeID"`    // FK -> PriceType
	OldPrice         *decimal.Decimal `json:"oldPrice,omitempty"`
	NewPrice         decimal.Decimal  `json:"newPrice"`
	ChangePercentage *decimal.Decimal `json:"changePercentage,omitempty"`
	ChangedAt        time.Time        `json:"changedAt"`
	Notes            string           `json:"notes,omitempty"`
}
