package mapping

import (
	"github.com/sarrafix/pricing_backend/internal/core/domain"
	"github.com/sarrafix/pricing_backend/internal/models"
)

// ToModelPriceType converts a domain PriceType to a model PriceType
func ToModelPriceType(d domain.PriceType) models.PriceType {
	return models.PriceType{
		PriceTypeID:    d.PriceTypeID,
		CategoryID:     d.CategoryID,
		Name:           d.Name,
		Action:         string(d.Action),
		BaseCurrency:   d.BaseCurrency,
		TargetCurrency: d.TargetCurrency,
		Description:    stringToPtr(d.Description),
		IsActive:       d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// ToDomainPriceType converts a model PriceType to a domain PriceType
func ToDomainPriceType(m models.PriceType) domain.PriceType {
	return domain.PriceType{
		PriceTypeID:    m.PriceTypeID,
		CategoryID:     m.CategoryID,
		Name:           m.Name,
		Action:         domain.PriceTypeAction(m.Action),
		BaseCurrency:   m.BaseCurrency,
		TargetCurrency: m.TargetCurrency,
		Description:    ptrToString(m.Description),
		IsActive:       m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// ToDomainPriceTypeSlice converts a slice of model PriceTypes to domain PriceTypes
func ToDomainPriceTypeSlice(ms []models.PriceType) []domain.PriceType {
	ds := make([]domain.PriceType, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPriceType(m)
	}
	return ds
}
