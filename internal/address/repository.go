package address

import (
	"context"
	"database/sql"
)

type Repository interface {
	Create(ctx context.Context, params CreateAddressParams) (*Address, error)
	GetByID(ctx context.Context, id uint) (*Address, error)
	ListByUser(ctx context.Context, userID uint) ([]*Address, error)
	Delete(ctx context.Context, id uint) error
	ClearDefault(ctx context.Context, userID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const addressColumns = `id, user_id, label, line1, line2, city, phone, is_default, created_at, updated_at`

func scanAddress(row interface{ Scan(...any) error }) (*Address, error) {
	var a Address
	err := row.Scan(
		&a.ID, &a.UserID, &a.Label, &a.Line1, &a.Line2,
		&a.City, &a.Phone, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) Create(ctx context.Context, params CreateAddressParams) (*Address, error) {
	query := `
	INSERT INTO addresses (user_id, label, line1, line2, city, phone, is_default)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING ` + addressColumns

	return scanAddress(r.db.QueryRowContext(
		ctx, query,
		params.UserID, params.Label, params.Line1, params.Line2,
		params.City, params.Phone, params.IsDefault,
	))
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Address, error) {
	a, err := scanAddress(r.db.QueryRowContext(ctx,
		`SELECT `+addressColumns+` FROM addresses WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]*Address, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+addressColumns+`
		FROM addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addresses []*Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAddressNotFound
	}
	return nil
}

func (r *repository) ClearDefault(ctx context.Context, userID uint) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE addresses SET is_default = FALSE WHERE user_id = $1
	`, userID)
	return err
}
