package inventory

import (
	"context"
	"database/sql"

	"tavolo-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetByMenuItemID(ctx context.Context, menuItemID uint) (*Stock, error)
	CheckAvailability(ctx context.Context, menuItemID uint, required int) (bool, error)
	Decrement(ctx context.Context, menuItemID uint, qty int) error
	DecrementTx(ctx context.Context, tx *sql.Tx, menuItemID uint, qty int) error
	Restock(ctx context.Context, menuItemID uint, qty int) (*Stock, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByMenuItemID(ctx context.Context, menuItemID uint) (*Stock, error) {
	query := `
	SELECT id, menu_item_id, quantity, last_updated
	FROM inventory
	WHERE menu_item_id = $1
	`

	var s Stock
	err := r.db.QueryRowContext(ctx, query, menuItemID).Scan(
		&s.ID, &s.MenuItemID, &s.Quantity, &s.LastUpdated,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) CheckAvailability(ctx context.Context, menuItemID uint, required int) (bool, error) {
	s, err := r.GetByMenuItemID(ctx, menuItemID)
	if err != nil {
		return false, err
	}
	if s == nil {
		return false, ErrStockNotFound
	}
	return s.Quantity >= required, nil
}

// decrementQuery is a guarded compare-and-swap: the WHERE clause rejects
// the update when stock would go negative, so concurrent approvals cannot
// oversell. Callers must check rows affected.
const decrementQuery = `
	UPDATE inventory
	SET quantity = quantity - $1, last_updated = NOW()
	WHERE menu_item_id = $2 AND quantity >= $1
`

func (r *repository) Decrement(ctx context.Context, menuItemID uint, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	res, err := r.db.ExecContext(ctx, decrementQuery, qty, menuItemID)
	if err != nil {
		return err
	}
	return r.checkDecrementResult(ctx, res, menuItemID, qty)
}

func (r *repository) DecrementTx(ctx context.Context, tx *sql.Tx, menuItemID uint, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	res, err := tx.ExecContext(ctx, decrementQuery, qty, menuItemID)
	if err != nil {
		return err
	}
	return r.checkDecrementResult(ctx, res, menuItemID, qty)
}

func (r *repository) checkDecrementResult(ctx context.Context, res sql.Result, menuItemID uint, qty int) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		logger.FromCtx(ctx).Warn("inventory decrement rejected",
			zap.Uint("menu_item_id", menuItemID),
			zap.Int("qty", qty),
		)
		return ErrInsufficientStock
	}
	return nil
}

func (r *repository) Restock(ctx context.Context, menuItemID uint, qty int) (*Stock, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	query := `
	INSERT INTO inventory (menu_item_id, quantity)
	VALUES ($1, $2)
	ON CONFLICT (menu_item_id)
	DO UPDATE SET quantity = inventory.quantity + $2, last_updated = NOW()
	RETURNING id, menu_item_id, quantity, last_updated
	`

	var s Stock
	err := r.db.QueryRowContext(ctx, query, menuItemID, qty).Scan(
		&s.ID, &s.MenuItemID, &s.Quantity, &s.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
