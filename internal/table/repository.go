package table

import (
	"context"
	"database/sql"

	"tavolo-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, params CreateTableParams) (*Table, error)
	GetByID(ctx context.Context, id uint) (*Table, error)
	GetAll(ctx context.Context) ([]*Table, error)
	GetByStatus(ctx context.Context, status Status) ([]*Table, error)

	// LockForAllocation loads the given tables inside tx in the supplied
	// order, taking row locks so concurrent allocations serialize.
	LockForAllocation(ctx context.Context, tx *sql.Tx, ids []uint) ([]*Table, error)

	// SetStatusTx flips status for all ids inside the caller's transaction.
	SetStatusTx(ctx context.Context, tx *sql.Tx, ids []uint, status Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const tableColumns = `id, name, capacity, status, location, position, created_at, updated_at`

func scanTable(row interface{ Scan(...any) error }) (*Table, error) {
	var t Table
	err := row.Scan(
		&t.ID, &t.Name, &t.Capacity, &t.Status,
		&t.Location, &t.Position, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) Create(ctx context.Context, params CreateTableParams) (*Table, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateTable"),
		zap.String("name", params.Name),
	)

	query := `
	INSERT INTO tables (name, capacity, status, location, position)
	VALUES ($1, $2, 'AVAILABLE', $3, $4)
	RETURNING ` + tableColumns

	t, err := scanTable(r.db.QueryRowContext(
		ctx, query,
		params.Name, params.Capacity, params.Location, params.Position,
	))
	if err != nil {
		log.Error("failed to create table", zap.Error(err))
		return nil, err
	}

	log.Info("table created", zap.Uint("table_id", t.ID))
	return t, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Table, error) {
	query := `SELECT ` + tableColumns + ` FROM tables WHERE id = $1`

	t, err := scanTable(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *repository) GetAll(ctx context.Context) ([]*Table, error) {
	query := `SELECT ` + tableColumns + ` FROM tables ORDER BY name`
	return r.queryTables(ctx, query)
}

func (r *repository) GetByStatus(ctx context.Context, status Status) ([]*Table, error) {
	query := `SELECT ` + tableColumns + ` FROM tables WHERE status = $1 ORDER BY name`
	return r.queryTables(ctx, query, status)
}

func (r *repository) queryTables(ctx context.Context, query string, args ...any) ([]*Table, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []*Table
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *repository) LockForAllocation(ctx context.Context, tx *sql.Tx, ids []uint) ([]*Table, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	// FOR UPDATE serializes two allocations targeting the same table: the
	// loser re-reads the winner's committed OCCUPIED status.
	query := `
	SELECT ` + tableColumns + `
	FROM tables
	WHERE id = ANY($1)
	FOR UPDATE
	`

	int64IDs := make([]int64, len(ids))
	for i, id := range ids {
		int64IDs[i] = int64(id)
	}

	rows, err := tx.QueryContext(ctx, query, pq.Array(int64IDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[uint]*Table, len(ids))
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		byID[t.ID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Preserve the caller's preference order.
	tables := make([]*Table, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			tables = append(tables, t)
		}
	}
	return tables, nil
}

func (r *repository) SetStatusTx(ctx context.Context, tx *sql.Tx, ids []uint, status Status) error {
	if len(ids) == 0 {
		return nil
	}

	int64IDs := make([]int64, len(ids))
	for i, id := range ids {
		int64IDs[i] = int64(id)
	}

	_, err := tx.ExecContext(ctx, `
		UPDATE tables
		SET status = $1, updated_at = NOW()
		WHERE id = ANY($2)
	`, status, pq.Array(int64IDs))
	return err
}
