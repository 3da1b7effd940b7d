package payment

import (
	"context"
	"database/sql"

	"tavolo-be/internal/inventory"
	"tavolo-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByPublicID(ctx context.Context, publicID string) (*Payment, error)
	GetByOrderID(ctx context.Context, orderID uint) (*Payment, error)

	// ApproveTx marks the payment COMPLETED and deducts inventory for every
	// order item (combos expanded to constituents) in a single transaction.
	// A shortfall on any line rolls the whole approval back. Approving a
	// payment that is already COMPLETED is an idempotent no-op.
	ApproveTx(ctx context.Context, publicID, transactionID string) (*ApproveResult, error)

	// CancelTx marks the payment FAILED. Order and inventory are untouched.
	CancelTx(ctx context.Context, publicID, transactionID string) (*Payment, error)
}

type repository struct {
	db            *sql.DB
	inventoryRepo inventory.Repository
}

func NewRepository(db *sql.DB, inventoryRepo inventory.Repository) Repository {
	return &repository{db: db, inventoryRepo: inventoryRepo}
}

const paymentColumns = `id, order_id, public_id, method, amount, status, transaction_id, return_url, created_at, updated_at`

func scanPayment(row interface{ Scan(...any) error }) (*Payment, error) {
	var p Payment
	err := row.Scan(
		&p.ID, &p.OrderID, &p.PublicID, &p.Method, &p.Amount,
		&p.Status, &p.TransactionID, &p.ReturnURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *Payment) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreatePayment"),
		zap.Uint("order_id", p.OrderID),
	)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO payments (order_id, public_id, method, amount, status, return_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`,
		p.OrderID, p.PublicID, p.Method, p.Amount, p.Status, p.ReturnURL,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		log.Error("failed to create payment", zap.Error(err))
		return err
	}

	log.Info("payment created", zap.String("public_id", p.PublicID))
	return nil
}

func (r *repository) GetByPublicID(ctx context.Context, publicID string) (*Payment, error) {
	p, err := scanPayment(r.db.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE public_id = $1`, publicID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) GetByOrderID(ctx context.Context, orderID uint) (*Payment, error) {
	p, err := scanPayment(r.db.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE order_id = $1`, orderID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) ApproveTx(ctx context.Context, publicID, transactionID string) (*ApproveResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ApproveTx"),
		zap.String("payment_public_id", publicID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// 1. Lock the payment row; concurrent approvals serialize here.
	p, err := scanPayment(tx.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE public_id = $1 FOR UPDATE`, publicID))
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}

	var orderPublicID, orderStatus string
	err = tx.QueryRowContext(ctx,
		`SELECT public_id, status FROM orders WHERE id = $1`, p.OrderID,
	).Scan(&orderPublicID, &orderStatus)
	if err != nil {
		return nil, err
	}

	if p.Status == StatusCompleted {
		// second approval: stock was already deducted, do nothing
		log.Info("payment already completed, skipping")
		return &ApproveResult{Payment: p, OrderPublicID: orderPublicID, AlreadyCompleted: true}, nil
	}
	if p.Status == StatusFailed {
		return nil, ErrPaymentAlreadyFailed
	}
	if orderStatus == "CANCELLED" {
		return nil, ErrOrderCancelled
	}

	// 2. Complete the payment.
	_, err = tx.ExecContext(ctx, `
		UPDATE payments
		SET status = 'COMPLETED', transaction_id = $1, updated_at = NOW()
		WHERE id = $2
	`, transactionID, p.ID)
	if err != nil {
		return nil, err
	}
	p.Status = StatusCompleted
	p.TransactionID = &transactionID

	// 3. Deduct inventory for every order item, expanding combos.
	affected, err := r.deductOrderStock(ctx, tx, p.OrderID)
	if err != nil {
		log.Warn("approval rolled back", zap.Error(err))
		return nil, err
	}

	// The order stays PENDING: with the payment COMPLETED that now means
	// awaiting staff approval, not awaiting payment.
	_, err = tx.ExecContext(ctx,
		`UPDATE orders SET updated_at = NOW() WHERE id = $1`, p.OrderID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info("payment approved",
		zap.String("transaction_id", transactionID),
		zap.Int("stock_lines", len(affected)),
	)

	return &ApproveResult{
		Payment:           p,
		OrderPublicID:     orderPublicID,
		AffectedMenuItems: affected,
	}, nil
}

// deductOrderStock applies the guarded decrement for each order line.
// Returns the distinct menu item ids touched.
func (r *repository) deductOrderStock(ctx context.Context, tx *sql.Tx, orderID uint) ([]uint, error) {
	type line struct {
		menuItemID sql.NullInt64
		comboID    sql.NullInt64
		quantity   int
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT menu_item_id, combo_id, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, err
	}

	var lines []line
	for rows.Next() {
		var l line
		if err := rows.Scan(&l.menuItemID, &l.comboID, &l.quantity); err != nil {
			rows.Close()
			return nil, err
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	// menu item id -> total quantity to deduct
	required := make(map[uint]int)
	var ordered []uint

	add := func(menuItemID uint, qty int) {
		if _, seen := required[menuItemID]; !seen {
			ordered = append(ordered, menuItemID)
		}
		required[menuItemID] += qty
	}

	for _, l := range lines {
		switch {
		case l.menuItemID.Valid:
			add(uint(l.menuItemID.Int64), l.quantity)
		case l.comboID.Valid:
			constituents, err := tx.QueryContext(ctx, `
				SELECT menu_item_id, quantity
				FROM combo_items
				WHERE combo_id = $1
				ORDER BY id
			`, l.comboID.Int64)
			if err != nil {
				return nil, err
			}
			for constituents.Next() {
				var menuItemID uint
				var qty int
				if err := constituents.Scan(&menuItemID, &qty); err != nil {
					constituents.Close()
					return nil, err
				}
				add(menuItemID, qty*l.quantity)
			}
			if err := constituents.Err(); err != nil {
				constituents.Close()
				return nil, err
			}
			constituents.Close()
		}
	}

	for _, menuItemID := range ordered {
		if err := r.inventoryRepo.DecrementTx(ctx, tx, menuItemID, required[menuItemID]); err != nil {
			return nil, err
		}
	}

	return ordered, nil
}

func (r *repository) CancelTx(ctx context.Context, publicID, transactionID string) (*Payment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	p, err := scanPayment(tx.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE public_id = $1 FOR UPDATE`, publicID))
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}

	if p.Status == StatusCompleted {
		return nil, ErrPaymentCompleted
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE payments
		SET status = 'FAILED', transaction_id = $1, updated_at = NOW()
		WHERE id = $2
	`, transactionID, p.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	p.Status = StatusFailed
	p.TransactionID = &transactionID
	return p, nil
}
