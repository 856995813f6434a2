package domain

// PriceTypeAction distinguishes buy and sell instruments.
type PriceTypeAction string

const (
	ActionBuy  PriceTypeAction = "buy"
	ActionSell PriceTypeAction = "sell"
)

// IsValid reports whether the action is one of the known values.
func (a PriceTypeAction) IsValid() bool {
	return a == ActionBuy || a == ActionSell
}

// PriceType is a buy/sell instrument within a category, e.g. "Buy USDT with IRR".
// (CategoryID, Name) is unique; base and target currency must differ.
type PriceType struct {
	PriceTypeID    string          `json:"priceTypeID"` // Primary Key (UUID)
	CategoryID     string          `json:"categoryID"`  // FK -> Category
	Name           string          `json:"name"`
	Action         PriceTypeAction `json:"action"`
	BaseCurrency   string          `json:"baseCurrency"`   // uppercased free-text code, e.g. "USDT"
	TargetCurrency string          `json:"targetCurrency"` // uppercased free-text code, e.g. "IRR"
	Description    string          `json:"description,omitempty"`
	IsActive       bool            `json:"isActive"`
	AuditFields

	// CurrentPrice is populated by listing queries when the price type has an
	// effective price; nil otherwise.
	CurrentPrice *Price `json:"currentPrice,omitempty"`
}
