package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sarrafix/pricing_backend/internal/apperrors"
	"github.com/sarrafix/pricing_backend/internal/core/domain"
	portsrepo "github.com/sarrafix/pricing_backend/internal/core/ports/repositories"
	"github.com/sarrafix/pricing_backend/internal/models"
	"github.com/sarrafix/pricing_backend/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool PgxPool) portsrepo.CategoryRepositoryWithTx {
	return &PgxCategoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CategoryRepositoryWithTx = (*PgxCategoryRepository)(nil)

const categoryColumns = `category_id, name, slug, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanCategory(row pgx.Row) (models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID,
		&m.Name,
		&m.Slug,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindCategoryByID retrieves a category by its primary key, without children.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1;`
	m, err := scanCategory(r.Pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by id %s: %w", categoryID, err)
	}
	d := mapping.ToDomainCategory(m)
	return &d, nil
}

// FindCategoryByName retrieves a category by exact name match.
func (r *PgxCategoryRepository) FindCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name = $1;`
	m, err := scanCategory(r.Pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by name %q: %w", name, err)
	}
	d := mapping.ToDomainCategory(m)
	return &d, nil
}

// ListCategories retrieves all categories ordered by name, with their price
// types and current prices attached.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	modelCategories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Category, error) {
		return scanCategory(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan categories: %w", err)
	}

	categories := mapping.ToDomainCategorySlice(modelCategories)
	if len(categories) == 0 {
		return []domain.Category{}, nil
	}

	priceTypesByCategory, err := r.loadPriceTypes(ctx)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if pts, ok := priceTypesByCategory[categories[i].CategoryID]; ok {
			categories[i].PriceTypes = pts
		} else {
			categories[i].PriceTypes = []domain.PriceType{}
		}
	}
	return categories, nil
}

// loadPriceTypes fetches all price types with their current prices, grouped
// by owning category.
func (r *PgxCategoryRepository) loadPriceTypes(ctx context.Context) (map[string][]domain.PriceType, error) {
	query := `
		SELECT pt.price_type_id, pt.category_id, pt.name, pt.action, pt.base_currency, pt.target_currency,
		       pt.description, pt.is_active, pt.created_at, pt.created_by, pt.last_updated_at, pt.last_updated_by,
		       p.price_id, p.price, p.is_current, p.created_at, p.created_by, p.last_updated_at, p.last_updated_by
		FROM price_types pt
		LEFT JOIN prices p ON p.price_type_id = pt.price_type_id AND p.is_current
		ORDER BY pt.action, pt.name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query price types: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]domain.PriceType)
	for rows.Next() {
		var mpt models.PriceType
		// The price columns come from a LEFT JOIN and may all be NULL.
		var priceID, priceCreatedBy, priceUpdatedBy *string
		var priceValue *decimal.Decimal
		var priceIsCurrent *bool
		var priceCreatedAt, priceUpdatedAt *time.Time
		err := rows.Scan(
			&mpt.PriceTypeID, &mpt.CategoryID, &mpt.Name, &mpt.Action, &mpt.BaseCurrency, &mpt.TargetCurrency,
			&mpt.Description, &mpt.IsActive, &mpt.CreatedAt, &mpt.CreatedBy, &mpt.LastUpdatedAt, &mpt.LastUpdatedBy,
			&priceID, &priceValue, &priceIsCurrent, &priceCreatedAt, &priceCreatedBy, &priceUpdatedAt, &priceUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan price type row: %w", err)
		}
		pt := mapping.ToDomainPriceType(mpt)
		if priceID != nil {
			price := mapping.ToDomainPrice(models.Price{
				PriceID:     *priceID,
				PriceTypeID: mpt.PriceTypeID,
				Price:       *priceValue,
				IsCurrent:   *priceIsCurrent,
				AuditFields: models.AuditFields{
					CreatedAt:     *priceCreatedAt,
					CreatedBy:     *priceCreatedBy,
					LastUpdatedAt: *priceUpdatedAt,
					LastUpdatedBy: *priceUpdatedBy,
				},
			})
			pt.CurrentPrice = &price
		}
		result[pt.CategoryID] = append(result[pt.CategoryID], pt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate price type rows: %w", err)
	}
	return result, nil
}

// SaveCategoryUnit persists the category together with its child upserts and
// deletes in one transaction. Any failure rolls back the whole unit.
func (r *PgxCategoryRepository) SaveCategoryUnit(ctx context.Context, category domain.Category, upserts []domain.PriceType, deletePriceTypeIDs []string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelCat := mapping.ToModelCategory(category)
	categoryQuery := `
		INSERT INTO categories (category_id, name, slug, description, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (category_id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			is_active = EXCLUDED.is_active,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	// Slug is intentionally absent from the update branch: it is derived on
	// first persist only and never recomputed.
	_, err = tx.Exec(ctx, categoryQuery,
		modelCat.CategoryID,
		modelCat.Name,
		modelCat.Slug,
		modelCat.Description,
		modelCat.IsActive,
		modelCat.CreatedAt,
		modelCat.CreatedBy,
		modelCat.LastUpdatedAt,
		modelCat.LastUpdatedBy,
	)
	if err != nil {
		return mapCategoryWriteError(err, modelCat.Name)
	}

	for _, priceTypeID := range deletePriceTypeIDs {
		// Scoped to the category so a stale ID cannot remove another
		// category's child.
		_, err := tx.Exec(ctx, `DELETE FROM price_types WHERE price_type_id = $1 AND category_id = $2;`, priceTypeID, modelCat.CategoryID)
		if err != nil {
			return fmt.Errorf("failed to delete price type %s: %w", priceTypeID, err)
		}
	}

	priceTypeQuery := `
		INSERT INTO price_types (price_type_id, category_id, name, action, base_currency, target_currency, description, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (price_type_id) DO UPDATE SET
			name = EXCLUDED.name,
			action = EXCLUDED.action,
			base_currency = EXCLUDED.base_currency,
			target_currency = EXCLUDED.target_currency,
			description = EXCLUDED.description,
			is_active = EXCLUDED.is_active,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		WHERE price_types.category_id = EXCLUDED.category_id;
	`
	for _, pt := range upserts {
		modelPT := mapping.ToModelPriceType(pt)
		tag, err := tx.Exec(ctx, priceTypeQuery,
			modelPT.PriceTypeID,
			modelPT.CategoryID,
			modelPT.Name,
			modelPT.Action,
			modelPT.BaseCurrency,
			modelPT.TargetCurrency,
			modelPT.Description,
			modelPT.IsActive,
			modelPT.CreatedAt,
			modelPT.CreatedBy,
			modelPT.LastUpdatedAt,
			modelPT.LastUpdatedBy,
		)
		if err != nil {
			return mapPriceTypeWriteError(err, modelPT.Name)
		}
		if tag.RowsAffected() == 0 {
			// The submitted ID exists but belongs to a different category, so
			// the guarded upsert touched nothing.
			return apperrors.NewNotFoundError("price type " + modelPT.Name + " does not belong to this category")
		}
	}

	return r.Commit(ctx, tx)
}

// DeleteCategory removes a category; price types, prices and history rows
// cascade via foreign keys.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM categories WHERE category_id = $1;`, categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func mapCategoryWriteError(err error, name string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
		if strings.Contains(pgErr.ConstraintName, "slug") {
			return apperrors.NewConflictError("category slug for " + name + " already exists")
		}
		return apperrors.NewConflictError("category name " + name + " already exists")
	}
	return fmt.Errorf("failed to save category %s: %w", name, err)
}

func mapPriceTypeWriteError(err error, name string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("price type name " + name + " already exists in this category")
		}
		if pgErr.Code == "23503" { // foreign_key_violation
			return apperrors.NewValidationFailedError("category for price type " + name + " does not exist")
		}
	}
	return fmt.Errorf("failed to save price type %s: %w", name, err)
}
