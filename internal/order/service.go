package order

import (
	"context"
	"errors"

	"tavolo-be/internal/cart"
	"tavolo-be/internal/logger"
	"tavolo-be/internal/metrics"
	"tavolo-be/internal/notify"
	"tavolo-be/internal/param"
	"tavolo-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service is the checkout pipeline: it converts a mutable cart into an
// immutable-history order. Inventory is untouched here; stock commits at
// payment approval.
type Service interface {
	Checkout(ctx context.Context, userID uint) (*Order, error)
	GetByPublicID(ctx context.Context, publicID string) (*Order, error)
	List(ctx context.Context, userID uint, limit, page int32) ([]*Order, error)
	UpdateStatus(ctx context.Context, publicID, statusCode string) (*Order, error)
}

type service struct {
	repo      Repository
	cartRepo  cart.Repository
	paramRepo param.Repository
	sink      notify.Sink
}

func NewService(repo Repository, cartRepo cart.Repository, paramRepo param.Repository, sink notify.Sink) Service {
	return &service{repo: repo, cartRepo: cartRepo, paramRepo: paramRepo, sink: sink}
}

// Checkout snapshots the user's ACTIVE cart into a PENDING order. Unit
// prices and the total are fixed at this moment; later menu price changes
// do not affect the order.
func (s *service) Checkout(ctx context.Context, userID uint) (*Order, error) {
	if userID == 0 {
		return nil, ErrUserNotAuthorized
	}

	log := logger.FromCtx(ctx).With(
		zap.String("method", "Checkout"),
		zap.Uint("user_id", userID),
	)

	c, err := s.cartRepo.GetActiveCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCartNotActive
	}
	if len(c.Items) == 0 && len(c.ComboItems) == 0 {
		return nil, ErrCartEmpty
	}

	o := &Order{
		PublicID:      uuid.New().String(),
		UserID:        userID,
		Status:        StatusPending,
		ReceiptNumber: utils.GenerateReceiptNumber(),
	}

	for _, line := range c.Items {
		menuItemID := line.MenuItemID
		o.Items = append(o.Items, &Item{
			MenuItemID: &menuItemID,
			Quantity:   line.Quantity,
			Price:      line.Price,
			Name:       line.Name,
		})
		o.TotalAmount += line.Price * float64(line.Quantity)
	}

	for _, line := range c.ComboItems {
		comboID := line.ComboID
		o.Items = append(o.Items, &Item{
			ComboID:  &comboID,
			Quantity: line.Quantity,
			Price:    line.Price,
			Name:     line.Name,
		})
		o.TotalAmount += line.Price * float64(line.Quantity)
	}

	if err := s.repo.CreateOrderTx(ctx, o, c.ID); err != nil {
		log.Error("checkout failed", zap.Error(err))
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	log.Info("checkout complete",
		zap.String("public_id", o.PublicID),
		zap.Float64("total_amount", o.TotalAmount),
		zap.Int("lines", len(o.Items)),
	)

	return o, nil
}

func (s *service) GetByPublicID(ctx context.Context, publicID string) (*Order, error) {
	o, err := s.repo.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	if userID, ok := utils.GetUserIDFromContext(ctx); ok && !utils.IsStaff(ctx) && o.UserID != userID {
		return nil, ErrNotOrderOwner
	}
	return o, nil
}

func (s *service) List(ctx context.Context, userID uint, limit, page int32) ([]*Order, error) {
	if userID == 0 {
		return nil, ErrUserNotAuthorized
	}
	return s.repo.ListByUser(ctx, userID, limit, page)
}

// UpdateStatus assigns a new ORDER_STATUS code. The code must exist in
// the parameter catalog; inventory is never touched here.
func (s *service) UpdateStatus(ctx context.Context, publicID, statusCode string) (*Order, error) {
	if _, err := s.paramRepo.GetByTypeAndCode(ctx, param.TypeOrderStatus, statusCode); err != nil {
		if errors.Is(err, param.ErrParamNotFound) {
			return nil, ErrUnknownStatus
		}
		return nil, err
	}

	o, err := s.repo.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	if o.Status.Terminal() {
		return nil, ErrTerminalStatus
	}

	newStatus := Status(statusCode)
	if err := s.repo.UpdateStatus(ctx, o.ID, newStatus); err != nil {
		return nil, err
	}
	o.Status = newStatus

	s.sink.OrderStatus(ctx, o.PublicID, string(newStatus))

	logger.FromCtx(ctx).Info("order status updated",
		zap.String("public_id", o.PublicID),
		zap.String("status", statusCode),
	)

	return o, nil
}
