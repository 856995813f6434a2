package domain

// Category is a named grouping of price types (e.g. "Tether", "Bitcoin").
// Name and Slug are unique across all categories; the slug is derived from the
// name on first persist and never recomputed afterwards.
type Category struct {
	CategoryID  string `json:"categoryID"` // Primary Key (UUID)
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
	AuditFields

	// PriceTypes is populated by listing queries; it is not persisted on the
	// category row itself.
	PriceTypes []PriceType `json:"priceTypes,omitempty"`
}
