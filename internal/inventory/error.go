package inventory

import "tavolo-be/internal/apperr"

var (
	ErrStockNotFound     = apperr.NotFound("inventory record not found")
	ErrInsufficientStock = apperr.Conflict("insufficient stock")
	ErrInvalidQuantity   = apperr.Validation("quantity must be greater than zero")
)
