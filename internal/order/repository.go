package order

import (
	"context"
	"database/sql"

	"tavolo-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	// CreateOrderTx persists the order and its snapshot items and closes
	// the source cart, all in one transaction.
	CreateOrderTx(ctx context.Context, o *Order, cartID uint) error

	GetByID(ctx context.Context, id uint) (*Order, error)
	GetByPublicID(ctx context.Context, publicID string) (*Order, error)
	GetItems(ctx context.Context, orderID uint) ([]*Item, error)
	ListByUser(ctx context.Context, userID uint, limit, page int32) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID uint, status Status) error
	UpdateStatusTx(ctx context.Context, tx *sql.Tx, orderID uint, status Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateOrderTx(ctx context.Context, o *Order, cartID uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.Uint("user_id", o.UserID),
		zap.Uint("cart_id", cartID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// 1. Insert order
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (public_id, user_id, status, total_amount, receipt_number)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`,
		o.PublicID, o.UserID, o.Status, o.TotalAmount, o.ReceiptNumber,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	// 2. Insert snapshot items
	for _, item := range o.Items {
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, combo_id, quantity, price)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`,
			o.ID, item.MenuItemID, item.ComboID, item.Quantity, item.Price,
		).Scan(&item.ID)
		if err != nil {
			log.Error("failed to insert order item", zap.Error(err))
			return err
		}
		item.OrderID = o.ID
	}

	// 3. Close the source cart so it cannot be mutated or re-checked-out
	res, err := tx.ExecContext(ctx, `
		UPDATE carts
		SET status = 'CHECKED_OUT', updated_at = NOW()
		WHERE id = $1 AND status = 'ACTIVE'
	`, cartID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// cart raced into a non-active state, abort the whole checkout
		return ErrCartNotActive
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info("order created",
		zap.Uint("order_id", o.ID),
		zap.String("public_id", o.PublicID),
		zap.Float64("total_amount", o.TotalAmount),
	)
	return nil
}

const orderColumns = `id, public_id, user_id, status, total_amount, receipt_number, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.PublicID, &o.UserID, &o.Status,
		&o.TotalAmount, &o.ReceiptNumber, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	o.Items, err = r.GetItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) GetByPublicID(ctx context.Context, publicID string) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE public_id = $1`, publicID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	o.Items, err = r.GetItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) GetItems(ctx context.Context, orderID uint) ([]*Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			oi.id, oi.order_id, oi.menu_item_id, oi.combo_id, oi.quantity, oi.price,
			COALESCE(m.name, co.name, '')
		FROM order_items oi
		LEFT JOIN menu_items m ON m.id = oi.menu_item_id
		LEFT JOIN combos co ON co.id = oi.combo_id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.ComboID, &it.Quantity, &it.Price, &it.Name); err != nil {
			return nil, err
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint, limit, page int32) ([]*Order, error) {
	finalLimit := int32(20)
	if limit > 0 {
		finalLimit = limit
	}
	if finalLimit > 100 {
		finalLimit = 100
	}

	finalPage := int32(1)
	if page > 0 {
		finalPage = page
	}
	offset := (finalPage - 1) * finalLimit

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, finalLimit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) UpdateStatus(ctx context.Context, orderID uint, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, orderID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) UpdateStatusTx(ctx context.Context, tx *sql.Tx, orderID uint, status Status) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, orderID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
