package cart

import (
	"context"
	"database/sql"

	"tavolo-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetActiveCart(ctx context.Context, userID uint) (*Cart, error)
	CreateCart(ctx context.Context, userID uint) (*Cart, error)
	UpdateStatus(ctx context.Context, cartID uint, status Status) error

	GetItem(ctx context.Context, cartID, menuItemID uint) (*Item, error)
	CreateItem(ctx context.Context, cartID, menuItemID uint, quantity int) (*Item, error)
	UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error
	RemoveItem(ctx context.Context, cartID, menuItemID uint) error

	GetComboItem(ctx context.Context, cartID, comboID uint) (*ComboItem, error)
	CreateComboItem(ctx context.Context, cartID, comboID uint, quantity int) (*ComboItem, error)
	UpdateComboItemQuantity(ctx context.Context, itemID uint, quantity int) error
	RemoveComboItem(ctx context.Context, cartID, comboID uint) error

	ClearCart(ctx context.Context, cartID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetActiveCart(ctx context.Context, userID uint) (*Cart, error) {
	query := `
	SELECT id, user_id, status, created_at, updated_at
	FROM carts
	WHERE user_id = $1 AND status = 'ACTIVE'
	`

	var c Cart
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&c.ID, &c.UserID, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadLines(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) loadLines(ctx context.Context, c *Cart) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ci.id, ci.cart_id, ci.menu_item_id, ci.quantity, m.name, m.price
		FROM cart_items ci
		JOIN menu_items m ON m.id = ci.menu_item_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id
	`, c.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.CartID, &it.MenuItemID, &it.Quantity, &it.Name, &it.Price); err != nil {
			return err
		}
		c.Items = append(c.Items, &it)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	comboRows, err := r.db.QueryContext(ctx, `
		SELECT cc.id, cc.cart_id, cc.combo_id, cc.quantity, co.name, co.price
		FROM cart_combo_items cc
		JOIN combos co ON co.id = cc.combo_id
		WHERE cc.cart_id = $1
		ORDER BY cc.id
	`, c.ID)
	if err != nil {
		return err
	}
	defer comboRows.Close()

	for comboRows.Next() {
		var ci ComboItem
		if err := comboRows.Scan(&ci.ID, &ci.CartID, &ci.ComboID, &ci.Quantity, &ci.Name, &ci.Price); err != nil {
			return err
		}
		c.ComboItems = append(c.ComboItems, &ci)
	}
	return comboRows.Err()
}

func (r *repository) CreateCart(ctx context.Context, userID uint) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateCart"),
		zap.Uint("user_id", userID),
	)

	query := `
	INSERT INTO carts (user_id, status)
	VALUES ($1, 'ACTIVE')
	RETURNING id, user_id, status, created_at, updated_at
	`

	var c Cart
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&c.ID, &c.UserID, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create cart", zap.Error(err))
		return nil, err
	}

	log.Info("cart created", zap.Uint("cart_id", c.ID))
	return &c, nil
}

func (r *repository) UpdateStatus(ctx context.Context, cartID uint, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE carts SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, cartID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartNotFound
	}
	return nil
}

func (r *repository) GetItem(ctx context.Context, cartID, menuItemID uint) (*Item, error) {
	query := `
	SELECT id, cart_id, menu_item_id, quantity
	FROM cart_items
	WHERE cart_id = $1 AND menu_item_id = $2
	`

	var it Item
	err := r.db.QueryRowContext(ctx, query, cartID, menuItemID).Scan(
		&it.ID, &it.CartID, &it.MenuItemID, &it.Quantity,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *repository) CreateItem(ctx context.Context, cartID, menuItemID uint, quantity int) (*Item, error) {
	query := `
	INSERT INTO cart_items (cart_id, menu_item_id, quantity)
	VALUES ($1, $2, $3)
	RETURNING id, cart_id, menu_item_id, quantity
	`

	var it Item
	err := r.db.QueryRowContext(ctx, query, cartID, menuItemID, quantity).Scan(
		&it.ID, &it.CartID, &it.MenuItemID, &it.Quantity,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *repository) UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cart_items SET quantity = $1 WHERE id = $2
	`, quantity, itemID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *repository) RemoveItem(ctx context.Context, cartID, menuItemID uint) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items WHERE cart_id = $1 AND menu_item_id = $2
	`, cartID, menuItemID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *repository) GetComboItem(ctx context.Context, cartID, comboID uint) (*ComboItem, error) {
	query := `
	SELECT id, cart_id, combo_id, quantity
	FROM cart_combo_items
	WHERE cart_id = $1 AND combo_id = $2
	`

	var ci ComboItem
	err := r.db.QueryRowContext(ctx, query, cartID, comboID).Scan(
		&ci.ID, &ci.CartID, &ci.ComboID, &ci.Quantity,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ci, nil
}

func (r *repository) CreateComboItem(ctx context.Context, cartID, comboID uint, quantity int) (*ComboItem, error) {
	query := `
	INSERT INTO cart_combo_items (cart_id, combo_id, quantity)
	VALUES ($1, $2, $3)
	RETURNING id, cart_id, combo_id, quantity
	`

	var ci ComboItem
	err := r.db.QueryRowContext(ctx, query, cartID, comboID, quantity).Scan(
		&ci.ID, &ci.CartID, &ci.ComboID, &ci.Quantity,
	)
	if err != nil {
		return nil, err
	}
	return &ci, nil
}

func (r *repository) UpdateComboItemQuantity(ctx context.Context, itemID uint, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cart_combo_items SET quantity = $1 WHERE id = $2
	`, quantity, itemID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *repository) RemoveComboItem(ctx context.Context, cartID, comboID uint) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_combo_items WHERE cart_id = $1 AND combo_id = $2
	`, cartID, comboID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *repository) ClearCart(ctx context.Context, cartID uint) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_combo_items WHERE cart_id = $1`, cartID)
	return err
}
