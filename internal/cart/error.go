package cart

import "tavolo-be/internal/apperr"

var (
	// -- Authentication/Authorization --
	ErrUserNotAuthenticated = apperr.Authorization("user not authenticated")

	// -- Validation & Input --
	ErrInvalidQuantity = apperr.Validation("invalid cart quantity")

	// -- Resource State --
	ErrCartNotFound     = apperr.NotFound("cart not found")
	ErrCartItemNotFound = apperr.NotFound("cart item not found")
	ErrCartNotActive    = apperr.Conflict("cart is not active")
	ErrCartEmpty        = apperr.Validation("cart is empty")

	// -- Referenced entities --
	ErrMenuItemNotFound  = apperr.NotFound("menu item not found")
	ErrComboNotFound     = apperr.NotFound("combo not found")
	ErrInsufficientStock = apperr.Conflict("insufficient stock")
)

// PgUniqueViolation is the Postgres error code for unique constraint hits.
const PgUniqueViolation = "23505"
