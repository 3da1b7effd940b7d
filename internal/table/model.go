package table

import "time"

// Status is the table registry's own state vocabulary. The param catalog
// (type TABLE_STATUS) is only the storage and display form of these codes.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusOccupied  Status = "OCCUPIED"
)

type Table struct {
	ID        uint
	Name      string
	Capacity  int
	Status    Status
	Location  *string
	Position  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateTableParams struct {
	Name     string
	Capacity int
	Location *string
	Position *string
}
