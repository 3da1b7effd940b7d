package reservation

import (
	"context"
	"database/sql"

	"tavolo-be/internal/logger"
	"tavolo-be/internal/table"

	"go.uber.org/zap"
)

type Repository interface {
	// CreateTx runs the whole allocation atomically: lock candidate tables,
	// merge capacity greedily, insert the reservation, record the holds and
	// mark the tables OCCUPIED. Any failure leaves no trace.
	CreateTx(ctx context.Context, r *Reservation, tableIDs []uint) error

	Get(ctx context.Context, ident Identifier) (*Reservation, error)
	ListByUser(ctx context.Context, userID uint) ([]*Reservation, error)

	// ReleaseTx frees every held table, detaches it, and then either
	// applies newStatus or hard-deletes the row. Releasing a reservation
	// that holds nothing is a no-op on tables. Returns the freed table ids.
	ReleaseTx(ctx context.Context, reservationID uint, newStatus *Status, hardDelete bool) ([]uint, error)

	UpdateFields(ctx context.Context, reservationID uint, params UpdateParams) error
	UpdateStatus(ctx context.Context, reservationID uint, status Status) error
}

type repository struct {
	db        *sql.DB
	tableRepo table.Repository
}

func NewRepository(db *sql.DB, tableRepo table.Repository) Repository {
	return &repository{db: db, tableRepo: tableRepo}
}

func (r *repository) CreateTx(ctx context.Context, res *Reservation, tableIDs []uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateReservationTx"),
		zap.Uint("user_id", res.UserID),
		zap.Int("number_of_people", res.NumberOfPeople),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// 1. Lock candidates so a concurrent allocation of the same tables
	// serializes; the loser sees OCCUPIED and fails cleanly.
	locked, err := r.tableRepo.LockForAllocation(ctx, tx, tableIDs)
	if err != nil {
		return err
	}

	allocation, err := mergeTables(tableIDs, locked, res.NumberOfPeople)
	if err != nil {
		log.Info("allocation rejected", zap.Error(err))
		return err
	}

	// 2. Insert the reservation row.
	err = tx.QueryRowContext(ctx, `
		INSERT INTO reservations (public_id, user_id, reservation_time, number_of_people, note, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`,
		res.PublicID, res.UserID, res.ReservationTime, res.NumberOfPeople, res.Note, res.Status,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		log.Error("failed to insert reservation", zap.Error(err))
		return err
	}

	// 3. Record the holds. reservation_tables(table_id) is unique, so a
	// lost race that slipped past the row lock still cannot double-book.
	allocatedIDs := make([]uint, 0, len(allocation))
	for _, t := range allocation {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO reservation_tables (reservation_id, table_id)
			VALUES ($1, $2)
		`, res.ID, t.ID); err != nil {
			return err
		}
		allocatedIDs = append(allocatedIDs, t.ID)
	}

	// 4. Mark the allocation OCCUPIED.
	if err := r.tableRepo.SetStatusTx(ctx, tx, allocatedIDs, table.StatusOccupied); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	for _, t := range allocation {
		t.Status = table.StatusOccupied
	}
	res.Tables = allocation

	log.Info("reservation created",
		zap.String("public_id", res.PublicID),
		zap.Int("tables", len(allocation)),
	)
	return nil
}

const reservationColumns = `id, public_id, user_id, reservation_time, number_of_people, note, status, created_at, updated_at`

func scanReservation(row interface{ Scan(...any) error }) (*Reservation, error) {
	var res Reservation
	err := row.Scan(
		&res.ID, &res.PublicID, &res.UserID, &res.ReservationTime,
		&res.NumberOfPeople, &res.Note, &res.Status, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *repository) Get(ctx context.Context, ident Identifier) (*Reservation, error) {
	var (
		res *Reservation
		err error
	)

	switch {
	case ident.ID != nil:
		res, err = scanReservation(r.db.QueryRowContext(ctx,
			`SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, *ident.ID))
	case ident.PublicID != nil:
		res, err = scanReservation(r.db.QueryRowContext(ctx,
			`SELECT `+reservationColumns+` FROM reservations WHERE public_id = $1`, *ident.PublicID))
	default:
		return nil, ErrReservationNotFound
	}

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	res.Tables, err = r.heldTables(ctx, res.ID)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *repository) heldTables(ctx context.Context, reservationID uint) ([]*table.Table, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.capacity, t.status, t.location, t.position, t.created_at, t.updated_at
		FROM reservation_tables rt
		JOIN tables t ON t.id = rt.table_id
		WHERE rt.reservation_id = $1
		ORDER BY t.id
	`, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []*table.Table
	for rows.Next() {
		var t table.Table
		if err := rows.Scan(&t.ID, &t.Name, &t.Capacity, &t.Status, &t.Location, &t.Position, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tables = append(tables, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]*Reservation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE user_id = $1
		ORDER BY reservation_time DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []*Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, res := range reservations {
		res.Tables, err = r.heldTables(ctx, res.ID)
		if err != nil {
			return nil, err
		}
	}
	return reservations, nil
}

func (r *repository) ReleaseTx(ctx context.Context, reservationID uint, newStatus *Status, hardDelete bool) ([]uint, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ReleaseTx"),
		zap.Uint("reservation_id", reservationID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Lock held tables before flipping them back.
	rows, err := tx.QueryContext(ctx, `
		SELECT table_id
		FROM reservation_tables
		WHERE reservation_id = $1
		ORDER BY table_id
		FOR UPDATE
	`, reservationID)
	if err != nil {
		return nil, err
	}

	var tableIDs []uint
	for rows.Next() {
		var id uint
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		tableIDs = append(tableIDs, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if len(tableIDs) > 0 {
		if err := r.tableRepo.SetStatusTx(ctx, tx, tableIDs, table.StatusAvailable); err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM reservation_tables WHERE reservation_id = $1
		`, reservationID); err != nil {
			return nil, err
		}
	}

	if hardDelete {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM reservations WHERE id = $1
		`, reservationID); err != nil {
			return nil, err
		}
	} else if newStatus != nil {
		if _, err := tx.ExecContext(ctx, `
			UPDATE reservations SET status = $1, updated_at = NOW() WHERE id = $2
		`, *newStatus, reservationID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info("reservation released",
		zap.Int("tables_freed", len(tableIDs)),
		zap.Bool("hard_delete", hardDelete),
	)
	return tableIDs, nil
}

func (r *repository) UpdateFields(ctx context.Context, reservationID uint, params UpdateParams) error {
	if params.ReservationTime == nil && params.Note == nil {
		return nil
	}

	query := `UPDATE reservations SET updated_at = NOW()`
	args := []any{}
	argIndex := 1

	if params.ReservationTime != nil {
		query += `, reservation_time = $1`
		args = append(args, *params.ReservationTime)
		argIndex++
	}
	if params.Note != nil {
		if argIndex == 1 {
			query += `, note = $1`
		} else {
			query += `, note = $2`
		}
		args = append(args, *params.Note)
		argIndex++
	}

	if argIndex == 2 {
		query += ` WHERE id = $2`
	} else {
		query += ` WHERE id = $3`
	}
	args = append(args, reservationID)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, reservationID uint, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reservations SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, reservationID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReservationNotFound
	}
	return nil
}
