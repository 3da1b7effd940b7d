package param

import (
	"context"
	"database/sql"
	"sync"

	"tavolo-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetByTypeAndCode(ctx context.Context, typ, code string) (*Param, error)
	ListByType(ctx context.Context, typ string) ([]*Param, error)
}

type repository struct {
	db *sql.DB

	// The catalog is written only by migrations, never by request-serving
	// code, so resolved rows are cached for the process lifetime.
	mu    sync.RWMutex
	cache map[string]*Param
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db, cache: make(map[string]*Param)}
}

func (r *repository) GetByTypeAndCode(ctx context.Context, typ, code string) (*Param, error) {
	key := typ + ":" + code

	r.mu.RLock()
	if p, ok := r.cache[key]; ok {
		r.mu.RUnlock()
		return p, nil
	}
	r.mu.RUnlock()

	query := `
	SELECT id, type, code, name, description
	FROM params
	WHERE type = $1 AND code = $2
	`

	var p Param
	err := r.db.QueryRowContext(ctx, query, typ, code).Scan(
		&p.ID, &p.Type, &p.Code, &p.Name, &p.Description,
	)
	if err == sql.ErrNoRows {
		return nil, ErrParamNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get param",
			zap.String("type", typ),
			zap.String("code", code),
			zap.Error(err),
		)
		return nil, err
	}

	r.mu.Lock()
	r.cache[key] = &p
	r.mu.Unlock()

	return &p, nil
}

func (r *repository) ListByType(ctx context.Context, typ string) ([]*Param, error) {
	query := `
	SELECT id, type, code, name, description
	FROM params
	WHERE type = $1
	ORDER BY code
	`

	rows, err := r.db.QueryContext(ctx, query, typ)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var params []*Param
	for rows.Next() {
		var p Param
		if err := rows.Scan(&p.ID, &p.Type, &p.Code, &p.Name, &p.Description); err != nil {
			return nil, err
		}
		params = append(params, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return params, nil
}
