package cart

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"tavolo-be/internal/inventory"
	"tavolo-be/internal/menu"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetActiveCart(ctx context.Context, userID uint) (*Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Cart), args.Error(1)
}

func (m *MockRepository) CreateCart(ctx context.Context, userID uint) (*Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Cart), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, cartID uint, status Status) error {
	args := m.Called(ctx, cartID, status)
	return args.Error(0)
}

func (m *MockRepository) GetItem(ctx context.Context, cartID, menuItemID uint) (*Item, error) {
	args := m.Called(ctx, cartID, menuItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Item), args.Error(1)
}

func (m *MockRepository) CreateItem(ctx context.Context, cartID, menuItemID uint, quantity int) (*Item, error) {
	args := m.Called(ctx, cartID, menuItemID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Item), args.Error(1)
}

func (m *MockRepository) UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error {
	args := m.Called(ctx, itemID, quantity)
	return args.Error(0)
}

func (m *MockRepository) RemoveItem(ctx context.Context, cartID, menuItemID uint) error {
	args := m.Called(ctx, cartID, menuItemID)
	return args.Error(0)
}

func (m *MockRepository) GetComboItem(ctx context.Context, cartID, comboID uint) (*ComboItem, error) {
	args := m.Called(ctx, cartID, comboID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ComboItem), args.Error(1)
}

func (m *MockRepository) CreateComboItem(ctx context.Context, cartID, comboID uint, quantity int) (*ComboItem, error) {
	args := m.Called(ctx, cartID, comboID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ComboItem), args.Error(1)
}

func (m *MockRepository) UpdateComboItemQuantity(ctx context.Context, itemID uint, quantity int) error {
	args := m.Called(ctx, itemID, quantity)
	return args.Error(0)
}

func (m *MockRepository) RemoveComboItem(ctx context.Context, cartID, comboID uint) error {
	args := m.Called(ctx, cartID, comboID)
	return args.Error(0)
}

func (m *MockRepository) ClearCart(ctx context.Context, cartID uint) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

// MockMenuRepository is a mock for the menu repository
type MockMenuRepository struct {
	mock.Mock
}

func (m *MockMenuRepository) GetItemByID(ctx context.Context, id uint) (*menu.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.Item), args.Error(1)
}

func (m *MockMenuRepository) GetItems(ctx context.Context, categoryID *uint, onlyAvailable bool) ([]*menu.Item, error) {
	args := m.Called(ctx, categoryID, onlyAvailable)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*menu.Item), args.Error(1)
}

func (m *MockMenuRepository) CreateItem(ctx context.Context, params menu.CreateItemParams) (*menu.Item, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.Item), args.Error(1)
}

func (m *MockMenuRepository) UpdateItemPrice(ctx context.Context, id uint, price float64) error {
	args := m.Called(ctx, id, price)
	return args.Error(0)
}

func (m *MockMenuRepository) SetItemAvailability(ctx context.Context, id uint, available bool) error {
	args := m.Called(ctx, id, available)
	return args.Error(0)
}

func (m *MockMenuRepository) GetComboByID(ctx context.Context, id uint) (*menu.Combo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.Combo), args.Error(1)
}

func (m *MockMenuRepository) GetCombos(ctx context.Context, onlyAvailable bool) ([]*menu.Combo, error) {
	args := m.Called(ctx, onlyAvailable)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*menu.Combo), args.Error(1)
}

func (m *MockMenuRepository) CreateCombo(ctx context.Context, params menu.CreateComboParams) (*menu.Combo, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.Combo), args.Error(1)
}

func (m *MockMenuRepository) GetComboItems(ctx context.Context, comboID uint) ([]*menu.ComboItem, error) {
	args := m.Called(ctx, comboID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*menu.ComboItem), args.Error(1)
}

// MockInventoryRepository is a mock for the inventory repository
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) GetByMenuItemID(ctx context.Context, menuItemID uint) (*inventory.Stock, error) {
	args := m.Called(ctx, menuItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Stock), args.Error(1)
}

func (m *MockInventoryRepository) CheckAvailability(ctx context.Context, menuItemID uint, required int) (bool, error) {
	args := m.Called(ctx, menuItemID, required)
	return args.Bool(0), args.Error(1)
}

func (m *MockInventoryRepository) Decrement(ctx context.Context, menuItemID uint, qty int) error {
	args := m.Called(ctx, menuItemID, qty)
	return args.Error(0)
}

func (m *MockInventoryRepository) DecrementTx(ctx context.Context, tx *sql.Tx, menuItemID uint, qty int) error {
	args := m.Called(ctx, tx, menuItemID, qty)
	return args.Error(0)
}

func (m *MockInventoryRepository) Restock(ctx context.Context, menuItemID uint, qty int) (*inventory.Stock, error) {
	args := m.Called(ctx, menuItemID, qty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Stock), args.Error(1)
}

func newTestService(repo *MockRepository, menuRepo *MockMenuRepository, invRepo *MockInventoryRepository) Service {
	return NewService(repo, menuRepo, invRepo)
}

func availableMenuItem(id uint) *menu.Item {
	return &menu.Item{ID: id, Name: "Nasi Goreng", Price: 10.00, Available: true}
}

func TestService_AddItem(t *testing.T) {
	ctx := context.Background()
	userID := uint(7)
	activeCart := &Cart{ID: 3, UserID: userID, Status: StatusActive}

	t.Run("New line", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockMenuRepo := new(MockMenuRepository)
		mockInvRepo := new(MockInventoryRepository)
		svc := newTestService(mockRepo, mockMenuRepo, mockInvRepo)

		mockMenuRepo.On("GetItemByID", ctx, uint(1)).Return(availableMenuItem(1), nil).Once()
		mockRepo.On("GetActiveCart", ctx, userID).Return(activeCart, nil).Once()
		mockRepo.On("GetItem", ctx, uint(3), uint(1)).Return(nil, nil).Once()
		mockInvRepo.On("CheckAvailability", ctx, uint(1), 2).Return(true, nil).Once()
		mockRepo.On("CreateItem", ctx, uint(3), uint(1), 2).
			Return(&Item{ID: 10, CartID: 3, MenuItemID: 1, Quantity: 2}, nil).Once()

		it, err := svc.AddItem(ctx, AddItemParams{UserID: userID, MenuItemID: 1, Quantity: 2})
		require.NoError(t, err)
		assert.Equal(t, 2, it.Quantity)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Re-adding increments the existing line", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockMenuRepo := new(MockMenuRepository)
		mockInvRepo := new(MockInventoryRepository)
		svc := newTestService(mockRepo, mockMenuRepo, mockInvRepo)

		mockMenuRepo.On("GetItemByID", ctx, uint(1)).Return(availableMenuItem(1), nil).Once()
		mockRepo.On("GetActiveCart", ctx, userID).Return(activeCart, nil).Once()
		mockRepo.On("GetItem", ctx, uint(3), uint(1)).
			Return(&Item{ID: 10, CartID: 3, MenuItemID: 1, Quantity: 2}, nil).Once()
		// stock is checked against the combined quantity
		mockInvRepo.On("CheckAvailability", ctx, uint(1), 5).Return(true, nil).Once()
		mockRepo.On("UpdateItemQuantity", ctx, uint(10), 5).Return(nil).Once()

		it, err := svc.AddItem(ctx, AddItemParams{UserID: userID, MenuItemID: 1, Quantity: 3})
		require.NoError(t, err)
		assert.Equal(t, 5, it.Quantity)
		mockRepo.AssertNotCalled(t, "CreateItem")
	})

	t.Run("Insufficient stock", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockMenuRepo := new(MockMenuRepository)
		mockInvRepo := new(MockInventoryRepository)
		svc := newTestService(mockRepo, mockMenuRepo, mockInvRepo)

		mockMenuRepo.On("GetItemByID", ctx, uint(1)).Return(availableMenuItem(1), nil).Once()
		mockRepo.On("GetActiveCart", ctx, userID).Return(activeCart, nil).Once()
		mockRepo.On("GetItem", ctx, uint(3), uint(1)).Return(nil, nil).Once()
		mockInvRepo.On("CheckAvailability", ctx, uint(1), 50).Return(false, nil).Once()

		_, err := svc.AddItem(ctx, AddItemParams{UserID: userID, MenuItemID: 1, Quantity: 50})
		assert.ErrorIs(t, err, ErrInsufficientStock)
		mockRepo.AssertNotCalled(t, "CreateItem")
	})

	t.Run("Unavailable menu item", func(t *testing.T) {
		mockMenuRepo := new(MockMenuRepository)
		svc := newTestService(new(MockRepository), mockMenuRepo, new(MockInventoryRepository))

		unavailable := availableMenuItem(1)
		unavailable.Available = false
		mockMenuRepo.On("GetItemByID", ctx, uint(1)).Return(unavailable, nil).Once()

		_, err := svc.AddItem(ctx, AddItemParams{UserID: userID, MenuItemID: 1, Quantity: 1})
		assert.ErrorIs(t, err, ErrMenuItemNotFound)
	})

	t.Run("Invalid quantity", func(t *testing.T) {
		svc := newTestService(new(MockRepository), new(MockMenuRepository), new(MockInventoryRepository))

		_, err := svc.AddItem(ctx, AddItemParams{UserID: userID, MenuItemID: 1, Quantity: 0})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestService_AddComboItem(t *testing.T) {
	ctx := context.Background()
	userID := uint(7)
	activeCart := &Cart{ID: 3, UserID: userID, Status: StatusActive}

	combo := &menu.Combo{
		ID: 5, Name: "Family Set", Price: 25.50, Available: true,
		Items: []*menu.ComboItem{
			{ComboID: 5, MenuItemID: 1, Quantity: 2},
			{ComboID: 5, MenuItemID: 2, Quantity: 1},
		},
	}

	t.Run("Checks every constituent at combo quantity", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockMenuRepo := new(MockMenuRepository)
		mockInvRepo := new(MockInventoryRepository)
		svc := newTestService(mockRepo, mockMenuRepo, mockInvRepo)

		mockMenuRepo.On("GetComboByID", ctx, uint(5)).Return(combo, nil).Once()
		mockRepo.On("GetActiveCart", ctx, userID).Return(activeCart, nil).Once()
		mockRepo.On("GetComboItem", ctx, uint(3), uint(5)).Return(nil, nil).Once()
		// 3 combos -> constituent 1 needs 6, constituent 2 needs 3
		mockInvRepo.On("CheckAvailability", ctx, uint(1), 6).Return(true, nil).Once()
		mockInvRepo.On("CheckAvailability", ctx, uint(2), 3).Return(true, nil).Once()
		mockRepo.On("CreateComboItem", ctx, uint(3), uint(5), 3).
			Return(&ComboItem{ID: 20, CartID: 3, ComboID: 5, Quantity: 3}, nil).Once()

		ci, err := svc.AddComboItem(ctx, AddComboItemParams{UserID: userID, ComboID: 5, Quantity: 3})
		require.NoError(t, err)
		assert.Equal(t, 3, ci.Quantity)
		mockInvRepo.AssertExpectations(t)
	})

	t.Run("One short constituent rejects the combo", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockMenuRepo := new(MockMenuRepository)
		mockInvRepo := new(MockInventoryRepository)
		svc := newTestService(mockRepo, mockMenuRepo, mockInvRepo)

		mockMenuRepo.On("GetComboByID", ctx, uint(5)).Return(combo, nil).Once()
		mockRepo.On("GetActiveCart", ctx, userID).Return(activeCart, nil).Once()
		mockRepo.On("GetComboItem", ctx, uint(3), uint(5)).Return(nil, nil).Once()
		mockInvRepo.On("CheckAvailability", ctx, uint(1), 2).Return(true, nil).Once()
		mockInvRepo.On("CheckAvailability", ctx, uint(2), 1).Return(false, nil).Once()

		_, err := svc.AddComboItem(ctx, AddComboItemParams{UserID: userID, ComboID: 5, Quantity: 1})
		assert.ErrorIs(t, err, ErrInsufficientStock)
		mockRepo.AssertNotCalled(t, "CreateComboItem")
	})
}

func TestService_UpdateItemQuantity(t *testing.T) {
	ctx := context.Background()
	userID := uint(7)
	activeCart := &Cart{ID: 3, UserID: userID, Status: StatusActive}

	t.Run("Zero removes the line", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo, new(MockMenuRepository), new(MockInventoryRepository))

		mockRepo.On("GetActiveCart", ctx, userID).Return(activeCart, nil).Once()
		mockRepo.On("RemoveItem", ctx, uint(3), uint(1)).Return(nil).Once()

		err := svc.UpdateItemQuantity(ctx, userID, 1, 0)
		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "UpdateItemQuantity")
	})

	t.Run("Missing line", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo, new(MockMenuRepository), new(MockInventoryRepository))

		mockRepo.On("GetActiveCart", ctx, userID).Return(activeCart, nil).Once()
		mockRepo.On("GetItem", ctx, uint(3), uint(1)).Return(nil, nil).Once()

		err := svc.UpdateItemQuantity(ctx, userID, 1, 2)
		assert.ErrorIs(t, err, ErrCartItemNotFound)
	})
}

func TestService_GetOrCreateActive(t *testing.T) {
	ctx := context.Background()
	userID := uint(7)

	t.Run("Creates when none exists", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo, new(MockMenuRepository), new(MockInventoryRepository))

		mockRepo.On("GetActiveCart", ctx, userID).Return(nil, nil).Once()
		mockRepo.On("CreateCart", ctx, userID).Return(&Cart{ID: 3, UserID: userID, Status: StatusActive}, nil).Once()

		c, err := svc.GetOrCreateActive(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, StatusActive, c.Status)
	})

	t.Run("Reuses the existing active cart", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo, new(MockMenuRepository), new(MockInventoryRepository))

		existing := &Cart{ID: 3, UserID: userID, Status: StatusActive}
		mockRepo.On("GetActiveCart", ctx, userID).Return(existing, nil).Once()

		c, err := svc.GetOrCreateActive(ctx, userID)
		require.NoError(t, err)
		assert.Same(t, existing, c)
		mockRepo.AssertNotCalled(t, "CreateCart")
	})

	t.Run("Anonymous user", func(t *testing.T) {
		svc := newTestService(new(MockRepository), new(MockMenuRepository), new(MockInventoryRepository))

		_, err := svc.GetOrCreateActive(ctx, 0)
		assert.ErrorIs(t, err, ErrUserNotAuthenticated)
	})

	t.Run("Repository error propagates", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo, new(MockMenuRepository), new(MockInventoryRepository))
		expectedErr := errors.New("db error")

		mockRepo.On("GetActiveCart", ctx, userID).Return(nil, expectedErr).Once()

		_, err := svc.GetOrCreateActive(ctx, userID)
		assert.Equal(t, expectedErr, err)
	})
}
