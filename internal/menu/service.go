package menu

import (
	"context"
)

type Service interface {
	GetItem(ctx context.Context, id uint) (*Item, error)
	ListItems(ctx context.Context, categoryID *uint, onlyAvailable bool) ([]*Item, error)
	CreateItem(ctx context.Context, params CreateItemParams) (*Item, error)
	UpdateItemPrice(ctx context.Context, id uint, price float64) error

	GetCombo(ctx context.Context, id uint) (*Combo, error)
	ListCombos(ctx context.Context, onlyAvailable bool) ([]*Combo, error)
	CreateCombo(ctx context.Context, params CreateComboParams) (*Combo, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetItem(ctx context.Context, id uint) (*Item, error) {
	it, err := s.repo.GetItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, ErrItemNotFound
	}
	return it, nil
}

func (s *service) ListItems(ctx context.Context, categoryID *uint, onlyAvailable bool) ([]*Item, error) {
	return s.repo.GetItems(ctx, categoryID, onlyAvailable)
}

func (s *service) CreateItem(ctx context.Context, params CreateItemParams) (*Item, error) {
	if params.Price < 0 {
		return nil, ErrInvalidPrice
	}
	return s.repo.CreateItem(ctx, params)
}

func (s *service) UpdateItemPrice(ctx context.Context, id uint, price float64) error {
	if price < 0 {
		return ErrInvalidPrice
	}
	return s.repo.UpdateItemPrice(ctx, id, price)
}

func (s *service) GetCombo(ctx context.Context, id uint) (*Combo, error) {
	c, err := s.repo.GetComboByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrComboNotFound
	}
	return c, nil
}

func (s *service) ListCombos(ctx context.Context, onlyAvailable bool) ([]*Combo, error) {
	return s.repo.GetCombos(ctx, onlyAvailable)
}

func (s *service) CreateCombo(ctx context.Context, params CreateComboParams) (*Combo, error) {
	if params.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if len(params.Items) == 0 {
		return nil, ErrEmptyCombo
	}
	for _, item := range params.Items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidComboQty
		}
		it, err := s.repo.GetItemByID(ctx, item.MenuItemID)
		if err != nil {
			return nil, err
		}
		if it == nil {
			return nil, ErrItemNotFound
		}
	}
	return s.repo.CreateCombo(ctx, params)
}
