package models

// PriceType is the storage representation of a buy/sell instrument.
// (category_id, name) is unique together.
type PriceType struct {
	PriceTypeID    string  `json:"priceTypeID"` // Primary Key (UUID)
	CategoryID     string  `json:"categoryID"`  // FK -> categories, ON DELETE CASCADE
	Name           string  `json:"name"`
	Action         string  `json:"action"` // "buy" or "sell"
	BaseCurrency   string  `json:"baseCurrency"`
	TargetCurrency string  `json:"targetCurrency"`
	Description    *string `json:"description,omitempty"`
	IsActive       bool    `json:"isActive"`
	AuditFields
}
