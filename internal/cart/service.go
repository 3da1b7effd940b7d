package cart

import (
	"context"

	"tavolo-be/internal/inventory"
	"tavolo-be/internal/logger"
	"tavolo-be/internal/menu"

	"go.uber.org/zap"
)

// Service defines the business logic for carts.
type Service interface {
	GetOrCreateActive(ctx context.Context, userID uint) (*Cart, error)
	GetActive(ctx context.Context, userID uint) (*Cart, error)
	AddItem(ctx context.Context, params AddItemParams) (*Item, error)
	AddComboItem(ctx context.Context, params AddComboItemParams) (*ComboItem, error)
	UpdateItemQuantity(ctx context.Context, userID, menuItemID uint, quantity int) error
	RemoveItem(ctx context.Context, userID, menuItemID uint) error
	RemoveComboItem(ctx context.Context, userID, comboID uint) error
	Clear(ctx context.Context, userID uint) error
}

type service struct {
	repo          Repository
	menuRepo      menu.Repository
	inventoryRepo inventory.Repository
}

func NewService(repo Repository, menuRepo menu.Repository, inventoryRepo inventory.Repository) Service {
	return &service{repo: repo, menuRepo: menuRepo, inventoryRepo: inventoryRepo}
}

// GetOrCreateActive returns the user's ACTIVE cart, creating one if none
// exists. One active cart per user; checkout closes it.
func (s *service) GetOrCreateActive(ctx context.Context, userID uint) (*Cart, error) {
	if userID == 0 {
		return nil, ErrUserNotAuthenticated
	}

	c, err := s.repo.GetActiveCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}
	return s.repo.CreateCart(ctx, userID)
}

func (s *service) GetActive(ctx context.Context, userID uint) (*Cart, error) {
	if userID == 0 {
		return nil, ErrUserNotAuthenticated
	}

	c, err := s.repo.GetActiveCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCartNotFound
	}
	return c, nil
}

// AddItem puts a menu item in the user's cart. Re-adding an item already
// in the cart increments its quantity. Stock is soft-checked here and
// re-validated authoritatively at payment approval.
func (s *service) AddItem(ctx context.Context, params AddItemParams) (*Item, error) {
	if params.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.menuRepo.GetItemByID(ctx, params.MenuItemID)
	if err != nil {
		return nil, err
	}
	if item == nil || !item.Available {
		return nil, ErrMenuItemNotFound
	}

	c, err := s.GetOrCreateActive(ctx, params.UserID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetItem(ctx, c.ID, params.MenuItemID)
	if err != nil {
		return nil, err
	}

	finalQty := params.Quantity
	if existing != nil {
		finalQty += existing.Quantity
	}

	ok, err := s.inventoryRepo.CheckAvailability(ctx, params.MenuItemID, finalQty)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInsufficientStock
	}

	if existing == nil {
		return s.repo.CreateItem(ctx, c.ID, params.MenuItemID, params.Quantity)
	}

	if err := s.repo.UpdateItemQuantity(ctx, existing.ID, finalQty); err != nil {
		return nil, err
	}
	existing.Quantity = finalQty
	return existing, nil
}

// AddComboItem puts a combo in the cart, soft-checking stock for every
// constituent at comboQty x constituentQty.
func (s *service) AddComboItem(ctx context.Context, params AddComboItemParams) (*ComboItem, error) {
	if params.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	combo, err := s.menuRepo.GetComboByID(ctx, params.ComboID)
	if err != nil {
		return nil, err
	}
	if combo == nil || !combo.Available {
		return nil, ErrComboNotFound
	}

	c, err := s.GetOrCreateActive(ctx, params.UserID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetComboItem(ctx, c.ID, params.ComboID)
	if err != nil {
		return nil, err
	}

	finalQty := params.Quantity
	if existing != nil {
		finalQty += existing.Quantity
	}

	for _, constituent := range combo.Items {
		required := constituent.Quantity * finalQty
		ok, err := s.inventoryRepo.CheckAvailability(ctx, constituent.MenuItemID, required)
		if err != nil {
			return nil, err
		}
		if !ok {
			logger.FromCtx(ctx).Info("combo rejected on constituent stock",
				zap.Uint("combo_id", params.ComboID),
				zap.Uint("menu_item_id", constituent.MenuItemID),
				zap.Int("required", required),
			)
			return nil, ErrInsufficientStock
		}
	}

	if existing == nil {
		return s.repo.CreateComboItem(ctx, c.ID, params.ComboID, params.Quantity)
	}

	if err := s.repo.UpdateComboItemQuantity(ctx, existing.ID, finalQty); err != nil {
		return nil, err
	}
	existing.Quantity = finalQty
	return existing, nil
}

// UpdateItemQuantity sets an absolute quantity; zero or less removes the line.
func (s *service) UpdateItemQuantity(ctx context.Context, userID, menuItemID uint, quantity int) error {
	c, err := s.GetActive(ctx, userID)
	if err != nil {
		return err
	}

	if quantity <= 0 {
		return s.repo.RemoveItem(ctx, c.ID, menuItemID)
	}

	existing, err := s.repo.GetItem(ctx, c.ID, menuItemID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCartItemNotFound
	}

	return s.repo.UpdateItemQuantity(ctx, existing.ID, quantity)
}

func (s *service) RemoveItem(ctx context.Context, userID, menuItemID uint) error {
	c, err := s.GetActive(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.RemoveItem(ctx, c.ID, menuItemID)
}

func (s *service) RemoveComboItem(ctx context.Context, userID, comboID uint) error {
	c, err := s.GetActive(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.RemoveComboItem(ctx, c.ID, comboID)
}

func (s *service) Clear(ctx context.Context, userID uint) error {
	c, err := s.GetActive(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.ClearCart(ctx, c.ID)
}
