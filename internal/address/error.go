package address

import "tavolo-be/internal/apperr"

var (
	ErrAddressNotFound = apperr.NotFound("address not found")
	ErrNotAddressOwner = apperr.Authorization("address belongs to another user")
)
