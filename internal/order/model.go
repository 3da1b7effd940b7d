package order

import "time"

// Status is the order's own state vocabulary, stored through the
// ORDER_STATUS param codes. PENDING covers both "awaiting payment" and
// "paid, awaiting staff approval"; the linked payment's status tells the
// two apart.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusApproved   Status = "APPROVED"
	StatusDelivering Status = "DELIVERING"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// terminal states accept no further transitions.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

type Order struct {
	ID            uint
	PublicID      string
	UserID        uint
	Status        Status
	TotalAmount   float64
	ReceiptNumber string
	Items         []*Item
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Item is a checkout-time snapshot line: Price is the per-unit price at
// the moment the order was created and never changes afterwards. Exactly
// one of MenuItemID/ComboID is set.
type Item struct {
	ID         uint
	OrderID    uint
	MenuItemID *uint
	ComboID    *uint
	Quantity   int
	Price      float64
	Name       string
}
