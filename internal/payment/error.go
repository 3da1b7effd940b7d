package payment

import "tavolo-be/internal/apperr"

var (
	ErrPaymentNotFound      = apperr.NotFound("payment not found")
	ErrOrderNotFound        = apperr.NotFound("order not found")
	ErrPaymentExists        = apperr.Conflict("order already has a payment")
	ErrPaymentAlreadyFailed = apperr.Conflict("payment already failed")
	ErrPaymentCompleted     = apperr.Conflict("payment already completed")
	ErrOrderCancelled       = apperr.Conflict("order is cancelled")
	ErrInsufficientStock    = apperr.Conflict("insufficient stock to fulfil order")
)
