package param

// Param is a generic enumerated value. Every fixed vocabulary in the
// system (table status, order status, payment status, reservation status,
// roles, locations) is a row keyed by (type, code).
type Param struct {
	ID          uint
	Type        string
	Code        string
	Name        string
	Description *string
}

// Vocabulary types referenced by business logic.
const (
	TypeOrderStatus       = "ORDER_STATUS"
	TypePaymentStatus     = "PAYMENT_STATUS"
	TypePaymentMethod     = "PAYMENT_METHOD"
	TypeReservationStatus = "RESERVATION_STATUS"
	TypeTableStatus       = "TABLE_STATUS"
	TypeTableLocation     = "TABLE_LOCATION"
	TypeTablePosition     = "TABLE_POSITION"
	TypeCartStatus        = "CART_STATUS"
	TypeUserRole          = "USER_ROLE"
)
