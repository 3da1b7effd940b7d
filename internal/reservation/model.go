package reservation

import (
	"time"

	"tavolo-be/internal/table"
)

// Status is the reservation's own state vocabulary, stored through the
// RESERVATION_STATUS param codes.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// Terminal transitions release every held table. CANCELLED means the
// guest never arrived; COMPLETED means the guest left. Both free tables.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

type Reservation struct {
	ID              uint
	PublicID        string
	UserID          uint
	Tables          []*table.Table
	ReservationTime time.Time
	NumberOfPeople  int
	Note            *string
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type CreateParams struct {
	UserID          uint
	TableIDs        []uint
	NumberOfPeople  int
	ReservationTime time.Time
	Note            *string
}

type UpdateParams struct {
	ReservationTime *time.Time
	Note            *string
	StatusCode      *string
}

// Identifier selects a reservation either by internal id (staff path) or
// by public id (owner path).
type Identifier struct {
	ID       *uint
	PublicID *string
}

func ByID(id uint) Identifier          { return Identifier{ID: &id} }
func ByPublicID(pid string) Identifier { return Identifier{PublicID: &pid} }
