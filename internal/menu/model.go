package menu

import "time"

type Item struct {
	ID          uint
	Name        string
	Description *string
	Price       float64
	CategoryID  *uint
	Available   bool
	ImageURL    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Combo is a fixed-price bundle of menu items sold as one cart line.
type Combo struct {
	ID        uint
	Name      string
	Price     float64
	Available bool
	Items     []*ComboItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ComboItem is one constituent of a combo: Quantity units of MenuItemID
// are consumed from inventory per combo sold.
type ComboItem struct {
	ID         uint
	ComboID    uint
	MenuItemID uint
	Quantity   int
}

type CreateItemParams struct {
	Name        string
	Description *string
	Price       float64
	CategoryID  *uint
	ImageURL    *string
}

type CreateComboParams struct {
	Name  string
	Price float64
	Items []CreateComboItemParams
}

type CreateComboItemParams struct {
	MenuItemID uint
	Quantity   int
}
