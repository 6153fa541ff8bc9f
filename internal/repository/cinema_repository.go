package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/osaze/cinema-booking/internal/model"
)

// CinemaRepo manages persistence for cinemas and their seat grids.
// A cinema's geometry is immutable after creation: the full seat set
// is derived from it and written in the same transaction as the
// cinema row, so no update path exists for rows/seats_per_row.
type CinemaRepo struct {
	db *sql.DB
}

// NewCinemaRepo constructs a CinemaRepo with the given DB handle.
func NewCinemaRepo(db *sql.DB) *CinemaRepo { return &CinemaRepo{db: db} }

// Create inserts a cinema and mechanically derives its seats from the
// grid geometry, all in one transaction. The generated ID and
// timestamps are populated on the given model.
func (r *CinemaRepo) Create(ctx context.Context, c *model.Cinema) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const ins = `INSERT INTO cinemas (name, seat_rows, seats_per_row, price_cents) VALUES (?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, ins, c.Name, c.Rows, c.SeatsPerRow, c.PriceCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)

	seats := c.SeatGrid()
	if len(seats) > 0 {
		q := `INSERT INTO seats (cinema_id, seat_row, seat_number) VALUES `
		args := make([]interface{}, 0, len(seats)*3)
		for i, s := range seats {
			if i > 0 {
				q += ","
			}
			q += "(?, ?, ?)"
			args = append(args, s.CinemaID, s.Row, s.Number)
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}

	const sel = `SELECT created_at, updated_at FROM cinemas WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, c.ID).Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID retrieves a cinema by its ID. It returns ErrCinemaNotFound
// when no row matches.
func (r *CinemaRepo) GetByID(ctx context.Context, id uint64) (*model.Cinema, error) {
	const q = `SELECT id, name, seat_rows, seats_per_row, price_cents, created_at, updated_at FROM cinemas WHERE id = ?`
	var c model.Cinema
	err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name, &c.Rows, &c.SeatsPerRow, &c.PriceCents, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCinemaNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns all cinemas ordered by ID.
func (r *CinemaRepo) List(ctx context.Context) ([]model.Cinema, error) {
	const q = `SELECT id, name, seat_rows, seats_per_row, price_cents, created_at, updated_at FROM cinemas ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Cinema
	for rows.Next() {
		var c model.Cinema
		if err := rows.Scan(&c.ID, &c.Name, &c.Rows, &c.SeatsPerRow, &c.PriceCents, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
