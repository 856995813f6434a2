package mapping

import (
	"github.com/sarrafix/pricing_backend/internal/core/domain"
	"github.com/sarrafix/pricing_backend/internal/models"
)

// ToModelPrice converts a domain Price to a model Price
func ToModelPrice(d domain.Price) models.Price {
	return models.Price{
		PriceID:     d.PriceID,
		PriceTypeID: d.PriceTypeID,
		Price:       d.Price,
		IsCurrent:   d.IsCurrent,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// ToDomainPrice converts a model Price to a domain Price
func ToDomainPrice(m models.Price) domain.Price {
	return domain.Price{
		PriceID:     m.PriceID,
		PriceTypeID: m.PriceTypeID,
		Price:       m.Price,
		IsCurrent:   m.IsCurrent,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// ToDomainPriceHistory converts a model PriceHistory to a domain PriceHistory
func ToDomainPriceHistory(m models.PriceHistory) domain.PriceHistory {
	return domain.PriceHistory{
		PriceHistoryID:   m.PriceHistoryID,
		PriceTypeID:      m.PriceTypeID,
		OldPrice:         m.OldPrice,
		NewPrice:         m.NewPrice,
		ChangePercentage: m.ChangePercentage,
		ChangedAt:        m.ChangedAt,
		Notes:            ptrToString(m.Notes),
	}
}

// ToDomainPriceHistorySlice converts a slice of model PriceHistory to domain PriceHistory
func ToDomainPriceHistorySlice(ms []models.PriceHistory) []domain.PriceHistory {
	ds := make([]domain.PriceHistory, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPriceHistory(m)
	}
	return ds
}
