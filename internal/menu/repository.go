package menu

import (
	"context"
	"database/sql"

	"tavolo-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetItemByID(ctx context.Context, id uint) (*Item, error)
	GetItems(ctx context.Context, categoryID *uint, onlyAvailable bool) ([]*Item, error)
	CreateItem(ctx context.Context, params CreateItemParams) (*Item, error)
	UpdateItemPrice(ctx context.Context, id uint, price float64) error
	SetItemAvailability(ctx context.Context, id uint, available bool) error

	GetComboByID(ctx context.Context, id uint) (*Combo, error)
	GetCombos(ctx context.Context, onlyAvailable bool) ([]*Combo, error)
	CreateCombo(ctx context.Context, params CreateComboParams) (*Combo, error)
	GetComboItems(ctx context.Context, comboID uint) ([]*ComboItem, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const itemColumns = `id, name, description, price, category_id, available, image_url, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (*Item, error) {
	var it Item
	err := row.Scan(
		&it.ID, &it.Name, &it.Description, &it.Price,
		&it.CategoryID, &it.Available, &it.ImageURL,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *repository) GetItemByID(ctx context.Context, id uint) (*Item, error) {
	query := `SELECT ` + itemColumns + ` FROM menu_items WHERE id = $1`

	it, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *repository) GetItems(ctx context.Context, categoryID *uint, onlyAvailable bool) ([]*Item, error) {
	query := `SELECT ` + itemColumns + ` FROM menu_items WHERE 1=1`
	args := []any{}
	argIndex := 1

	if categoryID != nil {
		query += ` AND category_id = $1`
		args = append(args, *categoryID)
		argIndex++
	}
	if onlyAvailable {
		query += ` AND available = TRUE`
	}
	query += ` ORDER BY name`
	_ = argIndex

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) CreateItem(ctx context.Context, params CreateItemParams) (*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateItem"),
		zap.String("name", params.Name),
	)

	query := `
	INSERT INTO menu_items (name, description, price, category_id, image_url)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING ` + itemColumns

	it, err := scanItem(r.db.QueryRowContext(
		ctx, query,
		params.Name, params.Description, params.Price, params.CategoryID, params.ImageURL,
	))
	if err != nil {
		log.Error("failed to create menu item", zap.Error(err))
		return nil, err
	}

	log.Info("menu item created", zap.Uint("menu_item_id", it.ID))
	return it, nil
}

func (r *repository) UpdateItemPrice(ctx context.Context, id uint, price float64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE menu_items SET price = $1, updated_at = NOW() WHERE id = $2
	`, price, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *repository) SetItemAvailability(ctx context.Context, id uint, available bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE menu_items SET available = $1, updated_at = NOW() WHERE id = $2
	`, available, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *repository) GetComboByID(ctx context.Context, id uint) (*Combo, error) {
	query := `
	SELECT id, name, price, available, created_at, updated_at
	FROM combos
	WHERE id = $1
	`

	var c Combo
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Price, &c.Available, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	items, err := r.GetComboItems(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Items = items

	return &c, nil
}

func (r *repository) GetCombos(ctx context.Context, onlyAvailable bool) ([]*Combo, error) {
	query := `
	SELECT id, name, price, available, created_at, updated_at
	FROM combos
	`
	if onlyAvailable {
		query += ` WHERE available = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var combos []*Combo
	for rows.Next() {
		var c Combo
		if err := rows.Scan(&c.ID, &c.Name, &c.Price, &c.Available, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		combos = append(combos, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, c := range combos {
		items, err := r.GetComboItems(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		c.Items = items
	}

	return combos, nil
}

func (r *repository) CreateCombo(ctx context.Context, params CreateComboParams) (*Combo, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateCombo"),
		zap.String("name", params.Name),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var c Combo
	err = tx.QueryRowContext(ctx, `
		INSERT INTO combos (name, price)
		VALUES ($1, $2)
		RETURNING id, name, price, available, created_at, updated_at
	`, params.Name, params.Price).Scan(
		&c.ID, &c.Name, &c.Price, &c.Available, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create combo", zap.Error(err))
		return nil, err
	}

	for _, item := range params.Items {
		var ci ComboItem
		err = tx.QueryRowContext(ctx, `
			INSERT INTO combo_items (combo_id, menu_item_id, quantity)
			VALUES ($1, $2, $3)
			RETURNING id, combo_id, menu_item_id, quantity
		`, c.ID, item.MenuItemID, item.Quantity).Scan(
			&ci.ID, &ci.ComboID, &ci.MenuItemID, &ci.Quantity,
		)
		if err != nil {
			log.Error("failed to create combo item", zap.Error(err))
			return nil, err
		}
		c.Items = append(c.Items, &ci)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info("combo created", zap.Uint("combo_id", c.ID), zap.Int("items", len(c.Items)))
	return &c, nil
}

func (r *repository) GetComboItems(ctx context.Context, comboID uint) ([]*ComboItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, combo_id, menu_item_id, quantity
		FROM combo_items
		WHERE combo_id = $1
		ORDER BY id
	`, comboID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*ComboItem
	for rows.Next() {
		var ci ComboItem
		if err := rows.Scan(&ci.ID, &ci.ComboID, &ci.MenuItemID, &ci.Quantity); err != nil {
			return nil, err
		}
		items = append(items, &ci)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
