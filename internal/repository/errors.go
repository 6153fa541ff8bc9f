// Package repository contains the MySQL data access layer. Each
// aggregate gets its own repository bound to a *sql.DB. Sentinel
// errors below let handlers map storage failures onto HTTP statuses
// without inspecting driver errors themselves.
package repository

import "errors"

// ErrCinemaNotFound is returned when a cinema lookup matches no row.
var ErrCinemaNotFound = errors.New("cinema not found")

// ErrMovieNotFound is returned when a movie lookup matches no row.
var ErrMovieNotFound = errors.New("movie not found")

// ErrShowtimeNotFound is returned when a showtime lookup matches no row.
var ErrShowtimeNotFound = errors.New("showtime not found")

// ErrBookingNotFound is returned when a booking does not exist or is
// not owned by the requesting user. Handlers translate it into 404.
var ErrBookingNotFound = errors.New("booking not found")
