package inventory

import "time"

type Stock struct {
	ID          uint
	MenuItemID  uint
	Quantity    int
	LastUpdated time.Time
}
