package models

// Category is the storage representation of a pricing category.
type Category struct {
	CategoryID  string  `json:"categoryID"` // Primary Key (UUID)
	Name        string  `json:"name"`       // unique
	Slug        string  `json:"slug"`       // unique, derived once
	Description *string `json:"description,omitempty"`
	IsActive    bool    `json:"isActive"`
	AuditFields
}
