package category

import (
	"context"
	"database/sql"
)

type Repository interface {
	GetAll(ctx context.Context) ([]*Category, error)
	GetByID(ctx context.Context, id uint) (*Category, error)
	Create(ctx context.Context, name string, parentID *uint) (*Category, error)
	UpdateParent(ctx context.Context, id uint, parentID *uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAll(ctx context.Context) ([]*Category, error) {
	query := `
	SELECT id, name, parent_id, created_at
	FROM categories
	ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ParentID, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Category, error) {
	query := `SELECT id, name, parent_id, created_at FROM categories WHERE id = $1`

	var c Category
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.ParentID, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) Create(ctx context.Context, name string, parentID *uint) (*Category, error) {
	query := `
	INSERT INTO categories (name, parent_id)
	VALUES ($1, $2)
	RETURNING id, name, parent_id, created_at
	`

	var c Category
	err := r.db.QueryRowContext(ctx, query, name, parentID).Scan(&c.ID, &c.Name, &c.ParentID, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) UpdateParent(ctx context.Context, id uint, parentID *uint) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE categories SET parent_id = $1 WHERE id = $2
	`, parentID, id)
	return err
}
