package model

import "time"

// Showtime represents a scheduled screening of one movie in one
// cinema over a concrete time interval. Showtimes are bulk-created
// by a scheduler run and bulk-deleted before each re-run (full
// replace). EndTime is always derived as StartTime plus the movie
// duration; it is never set independently.
//
// Fields:
//  ID         – primary key identifier.
//  CinemaID   – cinema where the screening takes place.
//  MovieID    – movie being screened.
//  StartTime  – when the screening begins (UTC).
//  EndTime    – StartTime + movie duration (UTC).
//  PriceCents – ticket price in cents, copied from the cinema default
//               at scheduling time.
type Showtime struct {
	ID         uint64    // showtimes.id
	CinemaID   uint64    // showtimes.cinema_id
	MovieID    uint64    // showtimes.movie_id
	StartTime  time.Time // showtimes.start_time
	EndTime    time.Time // showtimes.end_time
	PriceCents uint32    // showtimes.price_cents
}
