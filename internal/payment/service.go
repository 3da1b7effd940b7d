package payment

import (
	"context"

	"tavolo-be/internal/logger"
	"tavolo-be/internal/metrics"
	"tavolo-be/internal/notify"
	"tavolo-be/internal/order"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	// Initiate creates a PENDING payment for the order and returns it with
	// the gateway redirect URL. No inventory effect.
	Initiate(ctx context.Context, orderID uint, method string) (*Payment, error)

	// Approve is the authoritative event: payment COMPLETED, inventory
	// deducted all-or-nothing, notifications emitted. Idempotent.
	Approve(ctx context.Context, paymentPublicID string) (*Payment, error)

	// Cancel marks the payment FAILED; the order stays as-is for retry or
	// manual handling.
	Cancel(ctx context.Context, paymentPublicID string) (*Payment, error)

	GetByPublicID(ctx context.Context, paymentPublicID string) (*Payment, error)
}

type service struct {
	repo      Repository
	orderRepo order.Repository
	gateway   Gateway
	sink      notify.Sink
}

func NewService(repo Repository, orderRepo order.Repository, gateway Gateway, sink notify.Sink) Service {
	return &service{repo: repo, orderRepo: orderRepo, gateway: gateway, sink: sink}
}

func (s *service) Initiate(ctx context.Context, orderID uint, method string) (*Payment, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "InitiatePayment"),
		zap.Uint("order_id", orderID),
	)

	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	existing, err := s.repo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPaymentExists
	}

	p := &Payment{
		OrderID:  orderID,
		PublicID: uuid.New().String(),
		Method:   method,
		Amount:   o.TotalAmount,
		Status:   StatusPending,
	}

	returnURL, err := s.gateway.CreateInvoice(p.PublicID, p.Amount)
	if err != nil {
		return nil, err
	}
	p.ReturnURL = returnURL

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	log.Info("payment initiated",
		zap.String("payment_public_id", p.PublicID),
		zap.Float64("amount", p.Amount),
	)
	return p, nil
}

func (s *service) Approve(ctx context.Context, paymentPublicID string) (*Payment, error) {
	res, err := s.repo.ApproveTx(ctx, paymentPublicID, s.gateway.TransactionID())
	if err != nil {
		metrics.InventoryDeductionsFailed.WithLabelValues("approve").Inc()
		return nil, err
	}

	if res.AlreadyCompleted {
		return res.Payment, nil
	}

	metrics.OrdersPaidTotal.Inc()

	// Fire-and-forget: delivery problems never fail the approval.
	for _, menuItemID := range res.AffectedMenuItems {
		s.sink.MenuItemStock(ctx, menuItemID)
	}
	s.sink.OrderStatus(ctx, res.OrderPublicID, string(order.StatusPending))

	logger.FromCtx(ctx).Info("payment approved",
		zap.String("payment_public_id", paymentPublicID),
		zap.String("order_public_id", res.OrderPublicID),
	)

	return res.Payment, nil
}

func (s *service) Cancel(ctx context.Context, paymentPublicID string) (*Payment, error) {
	p, err := s.repo.CancelTx(ctx, paymentPublicID, s.gateway.TransactionID())
	if err != nil {
		return nil, err
	}

	metrics.PaymentFailedTotal.Inc()
	logger.FromCtx(ctx).Info("payment cancelled",
		zap.String("payment_public_id", paymentPublicID),
	)
	return p, nil
}

func (s *service) GetByPublicID(ctx context.Context, paymentPublicID string) (*Payment, error) {
	p, err := s.repo.GetByPublicID(ctx, paymentPublicID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}
	return p, nil
}
