package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/osaze/cinema-booking/internal/model"
)

// MovieRepo manages persistence for the movie catalogue. Movies are
// never edited in place: the external catalogue is the source of
// truth and ReplaceAll swaps the whole table in one transaction.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

const movieColumns = `id, title, duration_min, rating, overview, poster, backdrop, external_id, release_date`

func scanMovie(row interface{ Scan(...interface{}) error }) (model.Movie, error) {
	var m model.Movie
	err := row.Scan(&m.ID, &m.Title, &m.DurationMin, &m.Rating, &m.Overview, &m.Poster, &m.Backdrop, &m.ExternalID, &m.ReleaseDate)
	return m, err
}

// List returns all movies ordered by ID.
func (r *MovieRepo) List(ctx context.Context) ([]model.Movie, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetByID retrieves a movie by its ID. It returns ErrMovieNotFound
// when no row matches.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = ?`, id)
	m, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ListByCinema returns the cinema's catalogue in its attachment order.
// The scheduler consumes this ordering as the initial rotation.
func (r *MovieRepo) ListByCinema(ctx context.Context, cinemaID uint64) ([]model.Movie, error) {
	const q = `SELECT m.id, m.title, m.duration_min, m.rating, m.overview, m.poster, m.backdrop, m.external_id, m.release_date
	           FROM movies m
	           JOIN cinema_movies cm ON cm.movie_id = m.id
	           WHERE cm.cinema_id = ?
	           ORDER BY cm.position`
	rows, err := r.db.QueryContext(ctx, q, cinemaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ReplaceAll deletes the current catalogue and inserts the given
// movies, attaching each of them to every cinema in catalogue order.
// Deletion and re-insertion share one transaction so an error midway
// (including a failed upstream fetch that produced no records to
// insert) never leaves the catalogue half-empty. Dependent rows
// (cinema attachments, showtimes, bookings) go with the old movies
// via foreign key cascade.
func (r *MovieRepo) ReplaceAll(ctx context.Context, movies []model.Movie) error {
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

	if _, err := tx.ExecContext(ctx, `DELETE FROM movies`); err != nil {
		return err
	}

	const ins = `INSERT INTO movies (title, duration_min, rating, overview, poster, backdrop, external_id, release_date)
	             VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	ids := make([]uint64, 0, len(movies))
	for i := range movies {
		m := &movies[i]
		res, err := tx.ExecContext(ctx, ins, m.Title, m.DurationMin, m.Rating, m.Overview, m.Poster, m.Backdrop, m.ExternalID, m.ReleaseDate)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		m.ID = uint64(id)
		ids = append(ids, m.ID)
	}

	cinemaIDs, err := cinemaIDsTx(ctx, tx)
	if err != nil {
		return err
	}
	if len(cinemaIDs) > 0 && len(ids) > 0 {
		q := `INSERT INTO cinema_movies (cinema_id, movie_id, position) VALUES `
		args := make([]interface{}, 0, len(cinemaIDs)*len(ids)*3)
		first := true
		for _, cid := range cinemaIDs {
			for pos, mid := range ids {
				if !first {
					q += ","
				}
				first = false
				q += "(?, ?, ?)"
				args = append(args, cid, mid, pos+1)
			}
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func cinemaIDsTx(ctx context.Context, tx *sql.Tx) ([]uint64, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id FROM cinemas ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
