package repository

import (
	"context"
	"database/sql"

	"github.com/osaze/cinema-booking/internal/model"
)

// SeatRepo reads the seat grid of a cinema. Seats are written only as
// part of cinema creation (see CinemaRepo.Create); there is no update
// or delete path because the grid is immutable.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo { return &SeatRepo{db: db} }

// ListByCinema returns every seat of the cinema ordered row-major, the
// same order the grid was created in.
func (r *SeatRepo) ListByCinema(ctx context.Context, cinemaID uint64) ([]model.Seat, error) {
	const q = `SELECT id, cinema_id, seat_row, seat_number FROM seats WHERE cinema_id = ? ORDER BY seat_row, seat_number`
	rows, err := r.db.QueryContext(ctx, q, cinemaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Seat
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.CinemaID, &s.Row, &s.Number); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
