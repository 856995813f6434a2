package models

import "github.com/shopspring/decimal"

// Price is the storage representation of a priced value. A partial unique
// index on (price_type_id) WHERE is_current guarantees at most one current
// row per price type.
type Price struct {
	PriceID     string          `json:"priceID"`     // Primary Key (UUID)
	PriceTypeID string          `json:"priceTypeID"` // FK -> price_types, ON DELETE CASCADE
	Price       decimal.Decimal `json:"price"`       // NUMERIC(20,4), CHECK > 0
	IsCurrent   bool            `json:"isCurrent"`
	AuditFields
}
