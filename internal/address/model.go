package address

import "time"

// Address is a delivery target for orders in DELIVERING fulfilment.
type Address struct {
	ID        uint
	UserID    uint
	Label     string
	Line1     string
	Line2     *string
	City      string
	Phone     string
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateAddressParams struct {
	UserID    uint
	Label     string
	Line1     string
	Line2     *string
	City      string
	Phone     string
	IsDefault bool
}
