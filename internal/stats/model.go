package stats

import "time"

type DailyRevenue struct {
	Day     time.Time
	Orders  int
	Revenue float64
}

type TopItem struct {
	MenuItemID uint
	Name       string
	Sold       int
	Revenue    float64
}

type StatusCount struct {
	Status string
	Count  int
}
