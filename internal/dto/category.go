package dto

import (
	"time"

	"github.com/sarrafix/pricing_backend/internal/core/domain"
)

// PriceTypePayload is one child slot of a category submission. Slots that are
// entirely blank represent unused optional rows and are discarded rather than
// rejected; slots with Delete=true and a PriceTypeID request removal of that
// child. Validation of filled slots happens in the service, not at binding
// time, so blank slots can pass through.
type PriceTypePayload struct {
	PriceTypeID    string `json:"priceTypeID,omitempty"`
	Name           string `json:"name,omitempty"`
	Action         string `json:"action,omitempty" binding:"omitempty,oneof=buy sell"`
	BaseCurrency   string `json:"baseCurrency,omitempty"`
	TargetCurrency string `json:"targetCurrency,omitempty"`
	Description    string `json:"description,omitempty"`
	IsActive       *bool  `json:"isActive,omitempty"`
	Delete         bool   `json:"delete,omitempty"`
}

// IsBlank reports whether every user-editable field of the slot is empty.
func (p PriceTypePayload) IsBlank() bool {
	return p.PriceTypeID == "" && p.Name == "" && p.Action == "" &&
		p.BaseCurrency == "" && p.TargetCurrency == "" && p.Description == "" &&
		p.IsActive == nil && !p.Delete
}

// SaveCategoryRequest carries one category together with its variable-length
// list of child price type slots, for both create and edit.
type SaveCategoryRequest struct {
	Name        string             `json:"name" binding:"required"`
	Description string             `json:"description,omitempty"`
	IsActive    *bool              `json:"isActive,omitempty"`
	PriceTypes  []PriceTypePayload `json:"priceTypes,omitempty"`
}

// PriceTypeResponse is the API representation of a price type.
type PriceTypeResponse struct {
	PriceTypeID    string         `json:"priceTypeID"`
	CategoryID     string         `json:"categoryID"`
	Name           string         `json:"name"`
	Action         string         `json:"action"`
	BaseCurrency   string         `json:"baseCurrency"`
	TargetCurrency string         `json:"targetCurrency"`
	Description    string         `json:"description,omitempty"`
	IsActive       bool           `json:"isActive"`
	CurrentPrice   *PriceResponse `json:"currentPrice,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	LastUpdatedAt  time.Time      `json:"lastUpdatedAt"`
}

// CategoryResponse is the API representation of a category with its children.
type CategoryResponse struct {
	CategoryID    string              `json:"categoryID"`
	Name          string              `json:"name"`
	Slug          string              `json:"slug"`
	Description   string              `json:"description,omitempty"`
	IsActive      bool                `json:"isActive"`
	PriceTypes    []PriceTypeResponse `json:"priceTypes"`
	CreatedAt     time.Time           `json:"createdAt"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
}

// ToPriceTypeResponse converts a domain.PriceType to PriceTypeResponse
func ToPriceTypeResponse(pt domain.PriceType) PriceTypeResponse {
	resp := PriceTypeResponse{
		PriceTypeID:    pt.PriceTypeID,
		CategoryID:     pt.CategoryID,
		Name:           pt.Name,
		Action:         string(pt.Action),
		BaseCurrency:   pt.BaseCurrency,
		TargetCurrency: pt.TargetCurrency,
		Description:    pt.Description,
		IsActive:       pt.IsActive,
		CreatedAt:      pt.CreatedAt,
		LastUpdatedAt:  pt.LastUpdatedAt,
	}
	if pt.CurrentPrice != nil {
		price := ToPriceResponse(pt.CurrentPrice)
		resp.CurrentPrice = &price
	}
	return resp
}

// ToCategoryResponse converts a domain.Category to CategoryResponse
func ToCategoryResponse(cat domain.Category) CategoryResponse {
	priceTypes := make([]PriceTypeResponse, len(cat.PriceTypes))
	for i, pt := range cat.PriceTypes {
		priceTypes[i] = ToPriceTypeResponse(pt)
	}
	return CategoryResponse{
		CategoryID:    cat.CategoryID,
		Name:          cat.Name,
		Slug:          cat.Slug,
		Description:   cat.Description,
		IsActive:      cat.IsActive,
		PriceTypes:    priceTypes,
		CreatedAt:     cat.CreatedAt,
		LastUpdatedAt: cat.LastUpdatedAt,
	}
}

// ToListCategoryResponse converts a slice of domain.Category to CategoryResponse DTOs
func ToListCategoryResponse(cats []domain.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(cats))
	for i, cat := range cats {
		responses[i] = ToCategoryResponse(cat)
	}
	return responses
}
