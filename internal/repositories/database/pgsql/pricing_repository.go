package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sarrafix/pricing_backend/internal/apperrors"
	"github.com/sarrafix/pricing_backend/internal/core/domain"
	portsrepo "github.com/sarrafix/pricing_backend/internal/core/ports/repositories"
	"github.com/sarrafix/pricing_backend/internal/models"
	"github.com/sarrafix/pricing_backend/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type PgxPricingRepository struct {
	BaseRepository
}

// newPgxPricingRepository creates a new repository for price data.
func newPgxPricingRepository(pool PgxPool) portsrepo.PricingRepositoryWithTx {
	return &PgxPricingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PricingRepositoryWithTx = (*PgxPricingRepository)(nil)

const priceTypeColumns = `price_type_id, category_id, name, action, base_currency, target_currency, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

const priceColumns = `price_id, price_type_id, price, is_current, created_at, created_by, last_updated_at, last_updated_by`

func scanPriceType(row pgx.Row) (models.PriceType, error) {
	var m models.PriceType
	err := row.Scan(
		&m.PriceTypeID,
		&m.CategoryID,
		&m.Name,
		&m.Action,
		&m.BaseCurrency,
		&m.TargetCurrency,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanPrice(row pgx.Row) (models.Price, error) {
	var m models.Price
	err := row.Scan(
		&m.PriceID,
		&m.PriceTypeID,
		&m.Price,
		&m.IsCurrent,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindPriceTypeByID retrieves a price type by its primary key.
func (r *PgxPricingRepository) FindPriceTypeByID(ctx context.Context, priceTypeID string) (*domain.PriceType, error) {
	query := `SELECT ` + priceTypeColumns + ` FROM price_types WHERE price_type_id = $1;`
	m, err := scanPriceType(r.Pool.QueryRow(ctx, query, priceTypeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find price type by id %s: %w", priceTypeID, err)
	}
	d := mapping.ToDomainPriceType(m)
	return &d, nil
}

// FindCurrentPrice retrieves the unique current price row for a price type.
func (r *PgxPricingRepository) FindCurrentPrice(ctx context.Context, priceTypeID string) (*domain.Price, error) {
	query := `SELECT ` + priceColumns + ` FROM prices WHERE price_type_id = $1 AND is_current;`
	m, err := scanPrice(r.Pool.QueryRow(ctx, query, priceTypeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find current price for price type %s: %w", priceTypeID, err)
	}
	d := mapping.ToDomainPrice(m)
	return &d, nil
}

// ListPriceTypesWithCurrentPrice retrieves every price type joined with its
// category and its current price, if one exists.
func (r *PgxPricingRepository) ListPriceTypesWithCurrentPrice(ctx context.Context) ([]domain.PriceTypeListing, error) {
	query := `
		SELECT c.category_id, c.name, c.slug, c.description, c.is_active, c.created_at, c.created_by, c.last_updated_at, c.last_updated_by,
		       pt.price_type_id, pt.name, pt.action, pt.base_currency, pt.target_currency, pt.description, pt.is_active,
		       pt.created_at, pt.created_by, pt.last_updated_at, pt.last_updated_by,
		       p.price, p.last_updated_at
		FROM price_types pt
		JOIN categories c ON c.category_id = pt.category_id
		LEFT JOIN prices p ON p.price_type_id = pt.price_type_id AND p.is_current
		ORDER BY c.name, pt.action, pt.name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query price type listing: %w", err)
	}
	defer rows.Close()

	listings := []domain.PriceTypeListing{}
	for rows.Next() {
		var mc models.Category
		var mpt models.PriceType
		var currentPrice *decimal.Decimal
		var lastUpdated *time.Time
		err := rows.Scan(
			&mc.CategoryID, &mc.Name, &mc.Slug, &mc.Description, &mc.IsActive, &mc.CreatedAt, &mc.CreatedBy, &mc.LastUpdatedAt, &mc.LastUpdatedBy,
			&mpt.PriceTypeID, &mpt.Name, &mpt.Action, &mpt.BaseCurrency, &mpt.TargetCurrency, &mpt.Description, &mpt.IsActive,
			&mpt.CreatedAt, &mpt.CreatedBy, &mpt.LastUpdatedAt, &mpt.LastUpdatedBy,
			&currentPrice, &lastUpdated,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan price type listing row: %w", err)
		}
		mpt.CategoryID = mc.CategoryID
		listings = append(listings, domain.PriceTypeListing{
			Category:     mapping.ToDomainCategory(mc),
			PriceType:    mapping.ToDomainPriceType(mpt),
			CurrentPrice: currentPrice,
			LastUpdated:  lastUpdated,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate price type listing rows: %w", err)
	}
	return listings, nil
}

// ListPriceHistory retrieves the newest history rows for a price type.
func (r *PgxPricingRepository) ListPriceHistory(ctx context.Context, priceTypeID string, limit int) ([]domain.PriceHistory, error) {
	query := `
		SELECT price_history_id, price_type_id, old_price, new_price, change_percentage, changed_at, notes
		FROM price_history
		WHERE price_type_id = $1
		ORDER BY changed_at DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, priceTypeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query price history for %s: %w", priceTypeID, err)
	}
	defer rows.Close()

	modelHistory, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.PriceHistory, error) {
		var m models.PriceHistory
		err := row.Scan(
			&m.PriceHistoryID,
			&m.PriceTypeID,
			&m.OldPrice,
			&m.NewPrice,
			&m.ChangePercentage,
			&m.ChangedAt,
			&m.Notes,
		)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan price history: %w", err)
	}
	return mapping.ToDomainPriceHistorySlice(modelHistory), nil
}

// SetCurrentPrice applies one price write inside its own transaction.
func (r *PgxPricingRepository) SetCurrentPrice(ctx context.Context, priceTypeID string, newPrice decimal.Decimal, actorUserID, actorName string, now time.Time) (*domain.Price, *domain.PriceHistory, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	price, history, err := setCurrentPriceInTx(ctx, tx, priceTypeID, newPrice, actorUserID, actorName, now)
	if err != nil {
		return nil, nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return price, history, nil
}

// SetCurrentPrices applies several price writes in one transaction; if any
// entry fails, nothing is persisted.
func (r *PgxPricingRepository) SetCurrentPrices(ctx context.Context, updates []portsrepo.PriceUpdate, actorUserID, actorName string, now time.Time) ([]domain.PriceHistory, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	history := []domain.PriceHistory{}
	for _, update := range updates {
		_, h, err := setCurrentPriceInTx(ctx, tx, update.PriceTypeID, update.NewPrice, actorUserID, actorName, now)
		if err != nil {
			return nil, err
		}
		if h != nil {
			history = append(history, *h)
		}
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return history, nil
}

// setCurrentPriceInTx is the read-compare-write core of a price update. It
// locks the current row, then either inserts the first current price, leaves
// an unchanged value alone, or appends a history row and updates the price in
// place. The partial unique index on prices(price_type_id) WHERE is_current
// closes the race between two concurrent first writes; a violation surfaces
// as apperrors.ErrConflict.
func setCurrentPriceInTx(ctx context.Context, tx pgx.Tx, priceTypeID string, newPrice decimal.Decimal, actorUserID, actorName string, now time.Time) (*domain.Price, *domain.PriceHistory, error) {
	lockQuery := `SELECT ` + priceColumns + ` FROM prices WHERE price_type_id = $1 AND is_current FOR UPDATE;`
	current, err := scanPrice(tx.QueryRow(ctx, lockQuery, priceTypeID))
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, fmt.Errorf("failed to lock current price for %s: %w", priceTypeID, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		// First price ever set for this price type; no history is produced.
		price := domain.Price{
			PriceID:     uuid.NewString(),
			PriceTypeID: priceTypeID,
			Price:       newPrice,
			IsCurrent:   true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorUserID,
			},
		}
		modelPrice := mapping.ToModelPrice(price)
		insertQuery := `
			INSERT INTO prices (price_id, price_type_id, price, is_current, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
		`
		_, err := tx.Exec(ctx, insertQuery,
			modelPrice.PriceID,
			modelPrice.PriceTypeID,
			modelPrice.Price,
			modelPrice.IsCurrent,
			modelPrice.CreatedAt,
			modelPrice.CreatedBy,
			modelPrice.LastUpdatedAt,
			modelPrice.LastUpdatedBy,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
				return nil, nil, apperrors.NewAppError(409, "another update set the current price concurrently", apperrors.ErrConflict)
			}
			if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
				return nil, nil, apperrors.ErrNotFound
			}
			return nil, nil, fmt.Errorf("failed to insert price for %s: %w", priceTypeID, err)
		}
		return &price, nil, nil
	}

	if current.Price.Equal(newPrice) {
		// Nothing changed: silent success, no history, no write.
		existing := mapping.ToDomainPrice(current)
		return &existing, nil, nil
	}

	oldPrice := current.Price
	history := domain.PriceHistory{
		PriceHistoryID:   uuid.NewString(),
		PriceTypeID:      priceTypeID,
		OldPrice:         &oldPrice,
		NewPrice:         newPrice,
		ChangePercentage: domain.ComputeChangePercentage(&oldPrice, newPrice),
		ChangedAt:        now,
		Notes:            domain.PriceChangeNote(&oldPrice, newPrice, actorName),
	}
	historyQuery := `
		INSERT INTO price_history (price_history_id, price_type_id, old_price, new_price, change_percentage, changed_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, historyQuery,
		history.PriceHistoryID,
		history.PriceTypeID,
		history.OldPrice,
		history.NewPrice,
		history.ChangePercentage,
		history.ChangedAt,
		history.Notes,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to insert price history for %s: %w", priceTypeID, err)
	}

	// The same row is updated in place; is_current stays true.
	updateQuery := `UPDATE prices SET price = $1, last_updated_at = $2, last_updated_by = $3 WHERE price_id = $4;`
	_, err = tx.Exec(ctx, updateQuery, newPrice, now, actorUserID, current.PriceID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to update price %s: %w", current.PriceID, err)
	}

	updated := mapping.ToDomainPrice(current)
	updated.Price = newPrice
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actorUserID
	return &updated, &history, nil
}
