package notify

import "context"

// Sink receives domain events for delivery to connected clients. Calls are
// fire-and-forget: implementations must never block request handling and
// callers ignore delivery failures.
type Sink interface {
	OrderStatus(ctx context.Context, orderPublicID string, status string)
	MenuItemStock(ctx context.Context, menuItemID uint)
	TableStatus(ctx context.Context, tableID uint, status string)
	ReservationStatus(ctx context.Context, reservationPublicID string, status string)
}

// NopSink discards every event. Used in tests and as a fallback when the
// hub is disabled.
type NopSink struct{}

func (NopSink) OrderStatus(context.Context, string, string)       {}
func (NopSink) MenuItemStock(context.Context, uint)               {}
func (NopSink) TableStatus(context.Context, uint, string)         {}
func (NopSink) ReservationStatus(context.Context, string, string) {}
