package table

import "tavolo-be/internal/apperr"

var (
	ErrTableNotFound   = apperr.NotFound("table not found")
	ErrInvalidCapacity = apperr.Validation("table capacity must be greater than zero")
)
