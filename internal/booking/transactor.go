// Package booking implements the seat booking transaction: validate a
// set of requested seats against a showtime, then commit bookings and
// payment records for all of them or none of them. Storage is reached
// through the Store interface so the transaction logic is testable
// without a database; the MySQL repository is the production Store.
package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/osaze/cinema-booking/internal/model"
)

// SeatTakenError is returned by Store.CreateBookings when the unique
// key on (showtime, seat) rejects an insert, i.e. a rival request won
// the seat between validation and commit. The store must roll back
// the whole transaction before returning it.
type SeatTakenError struct {
	SeatID uint64
}

func (e SeatTakenError) Error() string {
	return fmt.Sprintf("seat %d is already booked for this showtime", e.SeatID)
}

// Draft pairs a seat with the ticket number minted for it.
type Draft struct {
	SeatID       uint64
	TicketNumber string
}

// Store is the persistence contract the transactor depends on.
// CreateBookings must write every booking and its payment record in
// one transaction, enforcing the (showtime, seat) uniqueness at the
// storage level rather than by prior reads.
type Store interface {
	// SeatsByIDs resolves the given seat IDs within a cinema and
	// returns the subset that exists, keyed by ID.
	SeatsByIDs(ctx context.Context, cinemaID uint64, seatIDs []uint64) (map[uint64]model.Seat, error)
	// BookedSeatIDs returns the IDs of seats already booked for the
	// showtime.
	BookedSeatIDs(ctx context.Context, showtimeID uint64) (map[uint64]struct{}, error)
	// CreateBookings atomically inserts one booking plus one unpaid
	// payment of amountCents per draft. On a uniqueness violation it
	// rolls everything back and returns a SeatTakenError.
	CreateBookings(ctx context.Context, showtimeID, userID uint64, amountCents uint32, drafts []Draft) error
}

// Result is the outcome of a booking request. When Errors is
// non-empty the request was rejected as a whole and TicketNumbers is
// empty; otherwise TicketNumbers holds one fresh ticket per seat in
// request order.
type Result struct {
	TicketNumbers []string
	Errors        []string
}

// Rejected reports whether the request was refused.
func (r Result) Rejected() bool { return len(r.Errors) > 0 }

// Transactor performs all-or-nothing seat bookings.
type Transactor struct {
	store Store
}

// NewTransactor constructs a Transactor. The store must be non-nil.
func NewTransactor(store Store) *Transactor {
	if store == nil {
		panic("nil store passed to NewTransactor")
	}
	return &Transactor{store: store}
}

// Book validates every requested seat for the given showtime and, when
// all of them pass, commits bookings and payment records in a single
// storage transaction. Per-seat failures (unknown seat, seat already
// booked) are itemized in Result.Errors and reject the whole request:
// no booking is created for seats that validated individually.
//
// Two rivals racing for the same seat cannot both succeed. The
// pre-checks here only shape the error messages; correctness comes
// from the unique key the store enforces inside the same transaction
// as the insert, so a lost race surfaces as an itemized error too.
func (t *Transactor) Book(ctx context.Context, showtime *model.Showtime, seatIDs []uint64, userID uint64) (Result, error) {
	unique := make([]uint64, 0, len(seatIDs))
	seen := make(map[uint64]struct{}, len(seatIDs))
	for _, id := range seatIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	seats, err := t.store.SeatsByIDs(ctx, showtime.CinemaID, unique)
	if err != nil {
		return Result{}, err
	}
	booked, err := t.store.BookedSeatIDs(ctx, showtime.ID)
	if err != nil {
		return Result{}, err
	}

	var res Result
	bookable := make([]uint64, 0, len(unique))
	for _, id := range unique {
		if _, ok := seats[id]; !ok {
			res.Errors = append(res.Errors, fmt.Sprintf("The seat with ID %d does not exist.", id))
			continue
		}
		if _, ok := booked[id]; ok {
			res.Errors = append(res.Errors, fmt.Sprintf("The seat with ID %d is already booked for this showtime.", id))
			continue
		}
		bookable = append(bookable, id)
	}
	if res.Rejected() {
		return res, nil
	}
	if len(bookable) == 0 {
		return res, nil
	}

	drafts := make([]Draft, 0, len(bookable))
	tickets := make([]string, 0, len(bookable))
	for _, id := range bookable {
		ticket := uuid.NewString()
		drafts = append(drafts, Draft{SeatID: id, TicketNumber: ticket})
		tickets = append(tickets, ticket)
	}

	if err := t.store.CreateBookings(ctx, showtime.ID, userID, showtime.PriceCents, drafts); err != nil {
		var taken SeatTakenError
		if errors.As(err, &taken) {
			// Lost the race after validation; same rejection shape as
			// the pre-checked case.
			res.Errors = append(res.Errors, fmt.Sprintf("The seat with ID %d is already booked for this showtime.", taken.SeatID))
			return res, nil
		}
		return Result{}, err
	}
	res.TicketNumbers = tickets
	return res, nil
}
