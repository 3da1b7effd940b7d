package reservation

import (
	"testing"

	"tavolo-be/internal/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func availableTable(id uint, capacity int) *table.Table {
	return &table.Table{ID: id, Capacity: capacity, Status: table.StatusAvailable}
}

func TestMergeTables(t *testing.T) {
	t.Run("Single table fits", func(t *testing.T) {
		loaded := []*table.Table{availableTable(1, 4)}

		allocation, err := mergeTables([]uint{1}, loaded, 3)
		require.NoError(t, err)
		require.Len(t, allocation, 1)
		assert.Equal(t, uint(1), allocation[0].ID)
	})

	t.Run("Merge stops at first table reaching the threshold", func(t *testing.T) {
		loaded := []*table.Table{
			availableTable(1, 4),
			availableTable(2, 2),
			availableTable(3, 6),
		}

		allocation, err := mergeTables([]uint{1, 2, 3}, loaded, 5)
		require.NoError(t, err)
		require.Len(t, allocation, 2)
		assert.Equal(t, uint(1), allocation[0].ID)
		assert.Equal(t, uint(2), allocation[1].ID)
	})

	t.Run("Walk respects request order not capacity", func(t *testing.T) {
		loaded := []*table.Table{
			availableTable(7, 2),
			availableTable(3, 8),
		}

		allocation, err := mergeTables([]uint{7, 3}, loaded, 4)
		require.NoError(t, err)
		require.Len(t, allocation, 2)
		assert.Equal(t, uint(7), allocation[0].ID)
	})

	t.Run("Exact capacity boundary", func(t *testing.T) {
		loaded := []*table.Table{availableTable(1, 4), availableTable(2, 2)}

		allocation, err := mergeTables([]uint{1, 2}, loaded, 6)
		require.NoError(t, err)
		assert.Len(t, allocation, 2)

		_, err = mergeTables([]uint{1, 2}, loaded, 7)
		assert.ErrorIs(t, err, ErrInsufficientCapacity)
	})

	t.Run("Unknown table id fails the whole request", func(t *testing.T) {
		loaded := []*table.Table{availableTable(1, 4)}

		_, err := mergeTables([]uint{1, 99}, loaded, 10)
		assert.ErrorIs(t, err, ErrTableNotFound)
	})

	t.Run("Occupied table fails even when later tables would fit", func(t *testing.T) {
		occupied := availableTable(1, 4)
		occupied.Status = table.StatusOccupied
		loaded := []*table.Table{occupied, availableTable(2, 10)}

		_, err := mergeTables([]uint{1, 2}, loaded, 2)
		assert.ErrorIs(t, err, ErrTableUnavailable)
	})

	t.Run("Empty request", func(t *testing.T) {
		_, err := mergeTables(nil, nil, 2)
		assert.ErrorIs(t, err, ErrInsufficientCapacity)
	})
}
