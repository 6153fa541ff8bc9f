package model

import "time"

// Cinema represents a movie theatre venue with a fixed seating grid.
// The grid geometry (Rows x SeatsPerRow) is immutable after creation:
// it determines the seat set, which is created together with the
// cinema in one transaction.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name of the cinema.
//  Rows        – number of seating rows (>= 1).
//  SeatsPerRow – seats per row (>= 1).
//  PriceCents  – default ticket price applied to scheduled showtimes.
//  CreatedAt   – timestamp when the cinema was created.
//  UpdatedAt   – timestamp of last update.
type Cinema struct {
	ID          uint64    // cinemas.id
	Name        string    // cinemas.name
	Rows        uint32    // cinemas.seat_rows
	SeatsPerRow uint32    // cinemas.seats_per_row
	PriceCents  uint32    // cinemas.price_cents
	CreatedAt   time.Time // cinemas.created_at
	UpdatedAt   time.Time // cinemas.updated_at
}

// Capacity returns the total number of seats in the cinema.
func (c Cinema) Capacity() uint32 {
	return c.Rows * c.SeatsPerRow
}

// SeatGrid derives the full seat set from the cinema geometry.
// Seats are produced row-major: row 1 seats 1..SeatsPerRow, then
// row 2, and so on. IDs are left zero for the database to assign.
func (c Cinema) SeatGrid() []Seat {
	seats := make([]Seat, 0, c.Rows*c.SeatsPerRow)
	for row := uint32(1); row <= c.Rows; row++ {
		for num := uint32(1); num <= c.SeatsPerRow; num++ {
			seats = append(seats, Seat{CinemaID: c.ID, Row: row, Number: num})
		}
	}
	return seats
}
