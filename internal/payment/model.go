package payment

import "time"

// Status is the payment's own state vocabulary, stored through the
// PAYMENT_STATUS param codes.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

type Payment struct {
	ID            uint
	OrderID       uint
	PublicID      string
	Method        string
	Amount        float64
	Status        Status
	TransactionID *string
	ReturnURL     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ApproveResult carries everything the service needs after the approval
// transaction commits: the updated payment, the linked order's public id,
// and the menu items whose stock changed.
type ApproveResult struct {
	Payment           *Payment
	OrderPublicID     string
	AlreadyCompleted  bool
	AffectedMenuItems []uint
}
