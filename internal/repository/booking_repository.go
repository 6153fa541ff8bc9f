package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/osaze/cinema-booking/internal/booking"
	"github.com/osaze/cinema-booking/internal/model"
)

// mysqlDupEntry is the MySQL error number for a unique key violation.
const mysqlDupEntry = 1062

// BookingRepo manages persistence for bookings and their payment
// records. It is the production implementation of booking.Store: the
// unique key on (showtime_id, seat_id) makes the insert the one true
// arbiter of seat ownership, so two rivals can never both commit a
// booking for the same seat no matter what their earlier reads saw.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo constructs a BookingRepo with the given DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

var _ booking.Store = (*BookingRepo)(nil)

// SeatsByIDs resolves seat IDs within a cinema, returning the subset
// that exists keyed by ID. Unknown IDs are simply absent from the map.
func (r *BookingRepo) SeatsByIDs(ctx context.Context, cinemaID uint64, seatIDs []uint64) (map[uint64]model.Seat, error) {
	out := make(map[uint64]model.Seat, len(seatIDs))
	if len(seatIDs) == 0 {
		return out, nil
	}
	q := `SELECT id, cinema_id, seat_row, seat_number FROM seats WHERE cinema_id = ? AND id IN (`
	args := make([]interface{}, 0, len(seatIDs)+1)
	args = append(args, cinemaID)
	for i, id := range seatIDs {
		if i > 0 {
			q += ","
		}
		q += "?"
		args = append(args, id)
	}
	q += ")"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.CinemaID, &s.Row, &s.Number); err != nil {
			return nil, err
		}
		out[s.ID] = s
	}
	return out, rows.Err()
}

// BookedSeatIDs returns the IDs of seats that already have a booking
// for the showtime.
func (r *BookingRepo) BookedSeatIDs(ctx context.Context, showtimeID uint64) (map[uint64]struct{}, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT seat_id FROM bookings WHERE showtime_id = ?`, showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uint64]struct{})
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = struct{}{}
	}
	return out, rows.Err()
}

// CreateBookings inserts one booking and one unpaid payment per draft
// inside a single transaction. A duplicate key on (showtime_id,
// seat_id) rolls the whole batch back and surfaces as a
// booking.SeatTakenError for the losing seat, which the transactor
// reports as an itemized rejection.
func (r *BookingRepo) CreateBookings(ctx context.Context, showtimeID, userID uint64, amountCents uint32, drafts []booking.Draft) error {
	if len(drafts) == 0 {
		return nil
	}
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

	const insBooking = `INSERT INTO bookings (user_id, showtime_id, seat_id, ticket_number) VALUES (?, ?, ?, ?)`
	const insPayment = `INSERT INTO payments (booking_id, amount_cents, paid) VALUES (?, ?, FALSE)`
	for _, d := range drafts {
		res, err := tx.ExecContext(ctx, insBooking, userID, showtimeID, d.SeatID, d.TicketNumber)
		if err != nil {
			var me *mysql.MySQLError
			if errors.As(err, &me) && me.Number == mysqlDupEntry {
				return booking.SeatTakenError{SeatID: d.SeatID}
			}
			return err
		}
		bookingID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, insPayment, bookingID, amountCents); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// BookingDetail is a booking joined with its showtime, movie, cinema
// and seat, shaped for the user's booking list.
type BookingDetail struct {
	ID           uint64 `json:"id"`
	TicketNumber string `json:"ticket_number"`
	Showtime     struct {
		ID        uint64    `json:"id"`
		StartTime time.Time `json:"start_time"`
		Movie     struct {
			Title  string `json:"title"`
			Poster string `json:"poster"`
		} `json:"movie"`
		Cinema struct {
			Name     string `json:"name"`
			Capacity uint32 `json:"capacity"`
		} `json:"cinema"`
	} `json:"showtime"`
	Seat struct {
		ID    uint64 `json:"id"`
		Label string `json:"label"`
	} `json:"seat"`
}

// ListByUser returns all bookings owned by the user, newest first,
// with nested showtime, movie, cinema and seat details.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.ticket_number,
	                  st.id, st.start_time,
	                  m.title, m.poster,
	                  c.name, c.seat_rows, c.seats_per_row,
	                  s.id, s.seat_row, s.seat_number
	           FROM bookings b
	           JOIN showtimes st ON st.id = b.showtime_id
	           JOIN movies m    ON m.id = st.movie_id
	           JOIN cinemas c   ON c.id = st.cinema_id
	           JOIN seats s     ON s.id = b.seat_id
	           WHERE b.user_id = ?
	           ORDER BY b.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BookingDetail
	for rows.Next() {
		var d BookingDetail
		var seatRows, seatsPerRow, row, number uint32
		var seatID uint64
		if err := rows.Scan(
			&d.ID, &d.TicketNumber,
			&d.Showtime.ID, &d.Showtime.StartTime,
			&d.Showtime.Movie.Title, &d.Showtime.Movie.Poster,
			&d.Showtime.Cinema.Name, &seatRows, &seatsPerRow,
			&seatID, &row, &number,
		); err != nil {
			return nil, err
		}
		d.Showtime.Cinema.Capacity = seatRows * seatsPerRow
		d.Seat.ID = seatID
		d.Seat.Label = model.Seat{Row: row, Number: number}.Label()
		out = append(out, d)
	}
	return out, rows.Err()
}

// DeleteByIDAndUser cancels a booking owned by the user. The payment
// record goes with it via foreign key cascade and the seat becomes
// bookable again for that showtime immediately. ErrBookingNotFound is
// returned when the booking does not exist or belongs to someone else.
func (r *BookingRepo) DeleteByIDAndUser(ctx context.Context, id, userID uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}
