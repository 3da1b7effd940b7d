package payment

import (
	"fmt"

	"github.com/google/uuid"
)

// Gateway abstracts the payment provider. Only the mock implementation
// ships; a real provider would implement the same interface.
type Gateway interface {
	// CreateInvoice registers the pending payment with the provider and
	// returns the URL the client is redirected to.
	CreateInvoice(paymentPublicID string, amount float64) (string, error)

	// TransactionID mints the provider-side transaction reference recorded
	// on approval or cancellation.
	TransactionID() string
}

// MockGateway approves everything and redirects back to our own payment
// pages. No external calls are made.
type MockGateway struct {
	BaseURL string
}

func NewMockGateway(baseURL string) *MockGateway {
	return &MockGateway{BaseURL: baseURL}
}

func (g *MockGateway) CreateInvoice(paymentPublicID string, amount float64) (string, error) {
	return fmt.Sprintf("%s/payments/%s/confirm?amount=%.2f", g.BaseURL, paymentPublicID, amount), nil
}

func (g *MockGateway) TransactionID() string {
	return "TXN-" + uuid.New().String()[:8]
}
