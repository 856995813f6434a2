package dto

import (
	"time"

	"github.com/sarrafix/pricing_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SetPriceRequest carries the raw price string for one price type. The value
// is kept as a string so the service owns parsing and rejects malformed input
// with a field-level reason instead of a generic binding error.
type SetPriceRequest struct {
	Price string `json:"price" binding:"required"`
}

// SetCategoryPricesRequest is the bulk form: raw price strings keyed by price
// type ID. Entries left empty by the operator are omitted by the client.
type SetCategoryPricesRequest struct {
	Prices map[string]string `json:"prices" binding:"required"`
}

// PriceResponse is the API representation of a price row.
type PriceResponse struct {
	PriceID       string          `json:"priceID"`
	PriceTypeID   string          `json:"priceTypeID"`
	Price         decimal.Decimal `json:"price"`
	IsCurrent     bool            `json:"isCurrent"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// PriceHistoryResponse is the API representation of one audit trail entry.
type PriceHistoryResponse struct {
	PriceHistoryID   string           `json:"priceHistoryID"`
	PriceTypeID      string           `json:"priceTypeID"`
	OldPrice         *decimal.Decimal `json:"oldPrice,omitempty"`
	NewPrice         decimal.Decimal  `json:"newPrice"`
	ChangePercentage *decimal.Decimal `json:"changePercentage,omitempty"`
	ChangedAt        time.Time        `json:"changedAt"`
	Notes            string           `json:"notes,omitempty"`
}

// PriceTypeListingResponse is one row of the price overview screen.
type PriceTypeListingResponse struct {
	Category     CategoryResponse  `json:"category"`
	PriceType    PriceTypeResponse `json:"priceType"`
	CurrentPrice *decimal.Decimal  `json:"currentPrice,omitempty"`
	LastUpdated  *time.Time        `json:"lastUpdated,omitempty"`
}

// ToPriceResponse converts a domain.Price to PriceResponse
func ToPriceResponse(p *domain.Price) PriceResponse {
	return PriceResponse{
		PriceID:       p.PriceID,
		PriceTypeID:   p.PriceTypeID,
		Price:         p.Price,
		IsCurrent:     p.IsCurrent,
		CreatedAt:     p.CreatedAt,
		LastUpdatedAt: p.LastUpdatedAt,
	}
}

// ToPriceHistoryResponse converts a domain.PriceHistory to PriceHistoryResponse
func ToPriceHistoryResponse(h domain.PriceHistory) PriceHistoryResponse {
	return PriceHistoryResponse{
		PriceHistoryID:   h.PriceHistoryID,
		PriceTypeID:      h.PriceTypeID,
		OldPrice:         h.OldPrice,
		NewPrice:         h.NewPrice,
		ChangePercentage: h.ChangePercentage,
		ChangedAt:        h.ChangedAt,
		Notes:            h.Notes,
	}
}

// ToListPriceHistoryResponse converts a slice of domain.PriceHistory to DTOs
func ToListPriceHistoryResponse(hs []domain.PriceHistory) []PriceHistoryResponse {
	responses := make([]PriceHistoryResponse, len(hs))
	for i, h := range hs {
		responses[i] = ToPriceHistoryResponse(h)
	}
	return responses
}

// ToPriceTypeListingResponse converts a domain.PriceTypeListing to its DTO
func ToPriceTypeListingResponse(l domain.PriceTypeListing) PriceTypeListingResponse {
	return PriceTypeListingResponse{
		Category:     ToCategoryResponse(l.Category),
		PriceType:    ToPriceTypeResponse(l.PriceType),
		CurrentPrice: l.CurrentPrice,
		LastUpdated:  l.LastUpdated,
	}
}

// ToListPriceTypeListingResponse converts a slice of domain.PriceTypeListing to DTOs
func ToListPriceTypeListingResponse(ls []domain.PriceTypeListing) []PriceTypeListingResponse {
	responses := make([]PriceTypeListingResponse, len(ls))
	for i, l := range ls {
		responses[i] = ToPriceTypeListingResponse(l)
	}
	return responses
}
