package menu

import "tavolo-be/internal/apperr"

var (
	ErrItemNotFound   = apperr.NotFound("menu item not found")
	ErrComboNotFound  = apperr.NotFound("combo not found")
	ErrInvalidPrice   = apperr.Validation("price must not be negative")
	ErrEmptyCombo     = apperr.Validation("combo must contain at least one item")
	ErrInvalidComboQty = apperr.Validation("combo item quantity must be greater than zero")
)
