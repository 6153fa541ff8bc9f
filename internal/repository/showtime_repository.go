package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/osaze/cinema-booking/internal/model"
	"github.com/osaze/cinema-booking/internal/schedule"
)

// ShowtimeRepo manages persistence for showtimes. Showtimes are
// written in bulk by scheduler runs (full replace per cinema) and
// read individually by the booking flow.
type ShowtimeRepo struct {
	db *sql.DB
}

// NewShowtimeRepo constructs a ShowtimeRepo with the given DB handle.
func NewShowtimeRepo(db *sql.DB) *ShowtimeRepo { return &ShowtimeRepo{db: db} }

// GetByID retrieves a showtime by its ID. It returns
// ErrShowtimeNotFound when no row matches.
func (r *ShowtimeRepo) GetByID(ctx context.Context, id uint64) (*model.Showtime, error) {
	const q = `SELECT id, cinema_id, movie_id, start_time, end_time, price_cents FROM showtimes WHERE id = ?`
	var s model.Showtime
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.CinemaID, &s.MovieID, &s.StartTime, &s.EndTime, &s.PriceCents)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowtimeNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ReplaceForCinema deletes every showtime of the cinema and inserts
// the given drafts, all in one transaction. Scheduler runs use it for
// their full-replace semantics: the generator itself knows nothing
// about previously scheduled showtimes. It returns the number of
// showtimes written. Callers must serialize runs per cinema; two
// concurrent replaces for the same cinema race each other by design.
func (r *ShowtimeRepo) ReplaceForCinema(ctx context.Context, cinemaID uint64, drafts []schedule.Draft) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM showtimes WHERE cinema_id = ?`, cinemaID); err != nil {
		return 0, err
	}

	if len(drafts) > 0 {
		q := `INSERT INTO showtimes (cinema_id, movie_id, start_time, end_time, price_cents) VALUES `
		args := make([]interface{}, 0, len(drafts)*5)
		for i, d := range drafts {
			if i > 0 {
				q += ","
			}
			q += "(?, ?, ?, ?, ?)"
			args = append(args, d.CinemaID, d.MovieID, d.StartTime, d.EndTime, d.PriceCents)
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return len(drafts), nil
}

// ListFutureByMovie returns the movie's showtimes starting after the
// given instant, ordered by start time ascending.
func (r *ShowtimeRepo) ListFutureByMovie(ctx context.Context, movieID uint64, after time.Time) ([]model.Showtime, error) {
	const q = `SELECT id, cinema_id, movie_id, start_time, end_time, price_cents
	           FROM showtimes WHERE movie_id = ? AND start_time > ? ORDER BY start_time`
	rows, err := r.db.QueryContext(ctx, q, movieID, after.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Showtime
	for rows.Next() {
		var s model.Showtime
		if err := rows.Scan(&s.ID, &s.CinemaID, &s.MovieID, &s.StartTime, &s.EndTime, &s.PriceCents); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// NextStartTimes returns, for every movie that has a showtime after
// the given instant, the start time of its next screening. One query
// serves the whole movie list instead of one lookup per movie.
func (r *ShowtimeRepo) NextStartTimes(ctx context.Context, after time.Time) (map[uint64]time.Time, error) {
	const q = `SELECT movie_id, MIN(start_time) FROM showtimes WHERE start_time > ? GROUP BY movie_id`
	rows, err := r.db.QueryContext(ctx, q, after.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uint64]time.Time)
	for rows.Next() {
		var movieID uint64
		var start time.Time
		if err := rows.Scan(&movieID, &start); err != nil {
			return nil, err
		}
		out[movieID] = start
	}
	return out, rows.Err()
}
