package reservation

import "tavolo-be/internal/apperr"

var (
	ErrReservationNotFound  = apperr.NotFound("reservation not found")
	ErrTableNotFound        = apperr.NotFound("table not found")
	ErrUnknownStatus        = apperr.Validation("unknown reservation status code")
	ErrInvalidPartySize     = apperr.Validation("number of people must be greater than zero")
	ErrInsufficientCapacity = apperr.Conflict("supplied tables cannot seat the party")
	ErrTableUnavailable     = apperr.Conflict("table is already occupied")
	ErrTerminalStatus       = apperr.Conflict("reservation is in a terminal status")
	ErrNotReservationOwner  = apperr.Authorization("reservation belongs to another user")
)
