package order

import "tavolo-be/internal/apperr"

var (
	ErrOrderNotFound      = apperr.NotFound("order not found")
	ErrCartEmpty          = apperr.Validation("cart has no items to check out")
	ErrCartNotActive      = apperr.Conflict("cart is not active")
	ErrUnknownStatus      = apperr.Validation("unknown order status code")
	ErrTerminalStatus     = apperr.Conflict("order is in a terminal status")
	ErrNotOrderOwner      = apperr.Authorization("order belongs to another user")
	ErrUserNotAuthorized  = apperr.Authorization("user not authenticated")
)
