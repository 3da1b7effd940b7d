package address

import "context"

type Service interface {
	Create(ctx context.Context, params CreateAddressParams) (*Address, error)
	List(ctx context.Context, userID uint) ([]*Address, error)
	Delete(ctx context.Context, userID, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, params CreateAddressParams) (*Address, error) {
	if params.IsDefault {
		if err := s.repo.ClearDefault(ctx, params.UserID); err != nil {
			return nil, err
		}
	}
	return s.repo.Create(ctx, params)
}

func (s *service) List(ctx context.Context, userID uint) ([]*Address, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Delete(ctx context.Context, userID, id uint) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return ErrAddressNotFound
	}
	if a.UserID != userID {
		return ErrNotAddressOwner
	}
	return s.repo.Delete(ctx, id)
}
