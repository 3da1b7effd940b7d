package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Decrement(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE inventory").
			WithArgs(3, uint(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Decrement(context.Background(), 1, 3)
		assert.NoError(t, err)
	})

	t.Run("Shortfall is rejected by the guard", func(t *testing.T) {
		mock.ExpectExec("UPDATE inventory").
			WithArgs(99, uint(1)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Decrement(context.Background(), 1, 99)
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	t.Run("Non-positive quantity", func(t *testing.T) {
		err := repo.Decrement(context.Background(), 1, 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)

		err = repo.Decrement(context.Background(), 1, -2)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestRepository_CheckAvailability(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	cols := []string{"id", "menu_item_id", "quantity", "last_updated"}

	t.Run("Enough stock", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM inventory").
			WithArgs(uint(1)).
			WillReturnRows(sqlmock.NewRows(cols).AddRow(1, 1, 10, time.Now()))

		ok, err := repo.CheckAvailability(context.Background(), 1, 10)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Not enough stock", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM inventory").
			WithArgs(uint(1)).
			WillReturnRows(sqlmock.NewRows(cols).AddRow(1, 1, 10, time.Now()))

		ok, err := repo.CheckAvailability(context.Background(), 1, 11)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("No stock record", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM inventory").
			WithArgs(uint(9)).
			WillReturnRows(sqlmock.NewRows(cols))

		_, err := repo.CheckAvailability(context.Background(), 9, 1)
		assert.ErrorIs(t, err, ErrStockNotFound)
	})
}

func TestRepository_Restock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Upserts and returns the new level", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO inventory").
			WithArgs(uint(1), 5).
			WillReturnRows(sqlmock.NewRows([]string{"id", "menu_item_id", "quantity", "last_updated"}).
				AddRow(1, 1, 15, time.Now()))

		s, err := repo.Restock(context.Background(), 1, 5)
		require.NoError(t, err)
		assert.Equal(t, 15, s.Quantity)
	})

	t.Run("Non-positive quantity", func(t *testing.T) {
		_, err := repo.Restock(context.Background(), 1, 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}
