package pgsql

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/sarrafix/pricing_backend/internal/apperrors"
	portsrepo "github.com/sarrafix/pricing_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var priceRowColumns = []string{"price_id", "price_type_id", "price", "is_current", "created_at", "created_by", "last_updated_at", "last_updated_by"}

func newPricingRepoWithMock(t *testing.T) (*PgxPricingRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)

	repo := &PgxPricingRepository{BaseRepository: BaseRepository{Pool: mockPool}}
	return repo, mockPool
}

func TestFindCurrentPrice_NotSet(t *testing.T) {
	repo, mockPool := newPricingRepoWithMock(t)
	priceTypeID := uuid.NewString()

	mockPool.ExpectQuery(`SELECT (.+) FROM prices WHERE price_type_id = \$1 AND is_current;`).
		WithArgs(priceTypeID).
		WillReturnRows(pgxmock.NewRows(priceRowColumns))

	price, err := repo.FindCurrentPrice(context.Background(), priceTypeID)

	require.Error(t, err)
	assert.Nil(t, price)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestSetCurrentPrice_FirstPriceInsertsWithoutHistory(t *testing.T) {
	repo, mockPool := newPricingRepoWithMock(t)
	priceTypeID := uuid.NewString()
	actorID := uuid.NewString()
	now := time.Now().UTC()
	value := decimal.RequireFromString("61500")

	mockPool.ExpectBegin()
	mockPool.ExpectQuery(`SELECT (.+) FROM prices WHERE price_type_id = \$1 AND is_current FOR UPDATE;`).
		WithArgs(priceTypeID).
		WillReturnRows(pgxmock.NewRows(priceRowColumns))
	mockPool.ExpectExec(`INSERT INTO prices`).
		WithArgs(pgxmock.AnyArg(), priceTypeID, value, true, now, actorID, now, actorID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectCommit()

	price, history, err := repo.SetCurrentPrice(context.Background(), priceTypeID, value, actorID, "Test Manager", now)

	require.NoError(t, err)
	require.NotNil(t, price)
	assert.Nil(t, history)
	assert.True(t, price.IsCurrent)
	assert.True(t, price.Price.Equal(value))
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestSetCurrentPrice_UnchangedValueIsNoOp(t *testing.T) {
	repo, mockPool := newPricingRepoWithMock(t)
	priceTypeID := uuid.NewString()
	priceID := uuid.NewString()
	actorID := uuid.NewString()
	now := time.Now().UTC()
	value := decimal.RequireFromString("61500")

	mockPool.ExpectBegin()
	mockPool.ExpectQuery(`SELECT (.+) FROM prices WHERE price_type_id = \$1 AND is_current FOR UPDATE;`).
		WithArgs(priceTypeID).
		WillReturnRows(pgxmock.NewRows(priceRowColumns).
			AddRow(priceID, priceTypeID, "61500.0000", true, now, actorID, now, actorID))
	mockPool.ExpectCommit()

	price, history, err := repo.SetCurrentPrice(context.Background(), priceTypeID, value, actorID, "Test Manager", now)

	require.NoError(t, err)
	require.NotNil(t, price)
	assert.Nil(t, history)
	assert.Equal(t, priceID, price.PriceID)
	assert.True(t, price.Price.Equal(value))
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestSetCurrentPrice_ChangedValueAppendsHistoryAndUpdatesInPlace(t *testing.T) {
	repo, mockPool := newPricingRepoWithMock(t)
	priceTypeID := uuid.NewString()
	priceID := uuid.NewString()
	actorID := uuid.NewString()
	now := time.Now().UTC()
	newValue := decimal.RequireFromString("75000")

	mockPool.ExpectBegin()
	mockPool.ExpectQuery(`SELECT (.+) FROM prices WHERE price_type_id = \$1 AND is_current FOR UPDATE;`).
		WithArgs(priceTypeID).
		WillReturnRows(pgxmock.NewRows(priceRowColumns).
			AddRow(priceID, priceTypeID, "60000.0000", true, now, actorID, now, actorID))
	mockPool.ExpectExec(`INSERT INTO price_history`).
		WithArgs(pgxmock.AnyArg(), priceTypeID, pgxmock.AnyArg(), newValue, pgxmock.AnyArg(), now, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectExec(`UPDATE prices SET price = \$1, last_updated_at = \$2, last_updated_by = \$3 WHERE price_id = \$4;`).
		WithArgs(newValue, now, actorID, priceID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockPool.ExpectCommit()

	price, history, err := repo.SetCurrentPrice(context.Background(), priceTypeID, newValue, actorID, "Test Manager", now)

	require.NoError(t, err)
	require.NotNil(t, price)
	require.NotNil(t, history)

	// Same row, new value.
	assert.Equal(t, priceID, price.PriceID)
	assert.True(t, price.Price.Equal(newValue))
	assert.True(t, price.IsCurrent)

	require.NotNil(t, history.OldPrice)
	assert.True(t, history.OldPrice.Equal(decimal.RequireFromString("60000")))
	assert.True(t, history.NewPrice.Equal(newValue))
	require.NotNil(t, history.ChangePercentage)
	assert.True(t, history.ChangePercentage.Equal(decimal.RequireFromString("25")))
	assert.Contains(t, history.Notes, "by Test Manager")
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestSetCurrentPrice_ConcurrentFirstWriteConflict(t *testing.T) {
	repo, mockPool := newPricingRepoWithMock(t)
	priceTypeID := uuid.NewString()
	actorID := uuid.NewString()
	now := time.Now().UTC()
	value := decimal.RequireFromString("61500")

	mockPool.ExpectBegin()
	mockPool.ExpectQuery(`SELECT (.+) FROM prices WHERE price_type_id = \$1 AND is_current FOR UPDATE;`).
		WithArgs(priceTypeID).
		WillReturnRows(pgxmock.NewRows(priceRowColumns))
	mockPool.ExpectExec(`INSERT INTO prices`).
		WithArgs(pgxmock.AnyArg(), priceTypeID, value, true, now, actorID, now, actorID).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "unique_current_price_per_type"})
	mockPool.ExpectRollback()

	price, history, err := repo.SetCurrentPrice(context.Background(), priceTypeID, value, actorID, "Test Manager", now)

	require.Error(t, err)
	assert.Nil(t, price)
	assert.Nil(t, history)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestSetCurrentPrices_AllEntriesShareOneTransaction(t *testing.T) {
	repo, mockPool := newPricingRepoWithMock(t)
	firstID := uuid.NewString()
	secondID := uuid.NewString()
	priceID := uuid.NewString()
	actorID := uuid.NewString()
	now := time.Now().UTC()
	firstValue := decimal.RequireFromString("62000")
	secondValue := decimal.RequireFromString("61000")

	mockPool.ExpectBegin()
	// First entry: value changed, history row appended.
	mockPool.ExpectQuery(`SELECT (.+) FROM prices WHERE price_type_id = \$1 AND is_current FOR UPDATE;`).
		WithArgs(firstID).
		WillReturnRows(pgxmock.NewRows(priceRowColumns).
			AddRow(priceID, firstID, "61500.0000", true, now, actorID, now, actorID))
	mockPool.ExpectExec(`INSERT INTO price_history`).
		WithArgs(pgxmock.AnyArg(), firstID, pgxmock.AnyArg(), firstValue, pgxmock.AnyArg(), now, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectExec(`UPDATE prices`).
		WithArgs(firstValue, now, actorID, priceID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	// Second entry: first price ever, insert only.
	mockPool.ExpectQuery(`SELECT (.+) FROM prices WHERE price_type_id = \$1 AND is_current FOR UPDATE;`).
		WithArgs(secondID).
		WillReturnRows(pgxmock.NewRows(priceRowColumns))
	mockPool.ExpectExec(`INSERT INTO prices`).
		WithArgs(pgxmock.AnyArg(), secondID, secondValue, true, now, actorID, now, actorID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectCommit()

	updates := []portsrepo.PriceUpdate{
		{PriceTypeID: firstID, NewPrice: firstValue},
		{PriceTypeID: secondID, NewPrice: secondValue},
	}
	history, err := repo.SetCurrentPrices(context.Background(), updates, actorID, "Test Manager", now)

	require.NoError(t, err)
	// Only the changed value produced a history entry; the first-ever price
	// for the second entry did not.
	require.Len(t, history, 1)
	assert.Equal(t, firstID, history[0].PriceTypeID)
	assert.True(t, history[0].NewPrice.Equal(firstValue))
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
