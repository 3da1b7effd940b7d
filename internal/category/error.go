package category

import "tavolo-be/internal/apperr"

var (
	ErrCategoryNotFound = apperr.NotFound("category not found")
	ErrCategoryCycle    = apperr.Validation("category parent assignment would create a cycle")
)
