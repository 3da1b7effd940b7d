package stats

import (
	"context"
	"database/sql"
	"time"
)

// Repository aggregates over orders with a COMPLETED payment: revenue is
// only counted once money has actually moved.
type Repository interface {
	DailyRevenue(ctx context.Context, from, to time.Time) ([]*DailyRevenue, error)
	TopItems(ctx context.Context, limit int) ([]*TopItem, error)
	OrdersByStatus(ctx context.Context) ([]*StatusCount, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) DailyRevenue(ctx context.Context, from, to time.Time) ([]*DailyRevenue, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			date_trunc('day', o.created_at) AS day,
			COUNT(DISTINCT o.id),
			COALESCE(SUM(o.total_amount), 0)
		FROM orders o
		JOIN payments p ON p.order_id = o.id AND p.status = 'COMPLETED'
		WHERE o.created_at >= $1 AND o.created_at < $2
		GROUP BY day
		ORDER BY day
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*DailyRevenue
	for rows.Next() {
		var d DailyRevenue
		if err := rows.Scan(&d.Day, &d.Orders, &d.Revenue); err != nil {
			return nil, err
		}
		result = append(result, &d)
	}
	return result, rows.Err()
}

func (r *repository) TopItems(ctx context.Context, limit int) ([]*TopItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			oi.menu_item_id,
			m.name,
			SUM(oi.quantity),
			SUM(oi.price * oi.quantity)
		FROM order_items oi
		JOIN menu_items m ON m.id = oi.menu_item_id
		JOIN orders o ON o.id = oi.order_id
		JOIN payments p ON p.order_id = o.id AND p.status = 'COMPLETED'
		WHERE oi.menu_item_id IS NOT NULL
		GROUP BY oi.menu_item_id, m.name
		ORDER BY SUM(oi.quantity) DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*TopItem
	for rows.Next() {
		var t TopItem
		if err := rows.Scan(&t.MenuItemID, &t.Name, &t.Sold, &t.Revenue); err != nil {
			return nil, err
		}
		result = append(result, &t)
	}
	return result, rows.Err()
}

func (r *repository) OrdersByStatus(ctx context.Context) ([]*StatusCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT status, COUNT(*)
		FROM orders
		GROUP BY status
		ORDER BY status
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*StatusCount
	for rows.Next() {
		var s StatusCount
		if err := rows.Scan(&s.Status, &s.Count); err != nil {
			return nil, err
		}
		result = append(result, &s)
	}
	return result, rows.Err()
}
