package cart

import "time"

// Status is the cart's own state vocabulary, stored through the CART_STATUS
// param codes.
type Status string

const (
	StatusActive     Status = "ACTIVE"
	StatusCheckedOut Status = "CHECKED_OUT"
	StatusCancelled  Status = "CANCELLED"
)

type Cart struct {
	ID         uint
	UserID     uint
	Status     Status
	Items      []*Item
	ComboItems []*ComboItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Item is a cart line for a single menu item. (CartID, MenuItemID) is
// unique: re-adding increments Quantity instead of duplicating rows.
type Item struct {
	ID         uint
	CartID     uint
	MenuItemID uint
	Quantity   int

	// joined for presentation and checkout snapshotting
	Name  string
	Price float64
}

// ComboItem is a cart line for a combo, same increment-on-duplicate rule.
type ComboItem struct {
	ID       uint
	CartID   uint
	ComboID  uint
	Quantity int

	Name  string
	Price float64
}

type AddItemParams struct {
	UserID     uint
	MenuItemID uint
	Quantity   int
}

type AddComboItemParams struct {
	UserID   uint
	ComboID  uint
	Quantity int
}
