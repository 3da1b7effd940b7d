package category

import "time"

type Category struct {
	ID        uint
	Name      string
	ParentID  *uint
	CreatedAt time.Time

	Children []*Category
}
