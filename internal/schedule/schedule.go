// Package schedule generates a cinema's showtime program. Given an
// ordered movie catalogue it packs screenings into each day of a fixed
// horizon, cycling through the catalogue round-robin. The generator is
// a pure function: it owns no state between calls and never touches
// storage, so callers decide how to persist (or discard) the drafts.
package schedule

import (
	"fmt"
	"time"

	"github.com/osaze/cinema-booking/internal/model"
)

// Options controls the packing policy. The zero value is not usable;
// call DefaultOptions for the standard 7-day, 08:00-22:00, 1 hour gap
// program.
type Options struct {
	HorizonDays int           // number of days to plan
	OpenHour    int           // first screening of a day starts at this hour
	CloseHour   int           // a screening must end before this hour
	Gap         time.Duration // idle time between two screenings
}

// DefaultOptions returns the fixed production policy: a 7-day horizon,
// doors open at 08:00, last credits roll before 22:00, one hour of
// cleanup between screenings.
func DefaultOptions() Options {
	return Options{
		HorizonDays: 7,
		OpenHour:    8,
		CloseHour:   22,
		Gap:         time.Hour,
	}
}

// Draft is a showtime produced by Generate but not yet persisted.
// EndTime always equals StartTime plus the movie duration.
type Draft struct {
	CinemaID   uint64
	MovieID    uint64
	StartTime  time.Time
	EndTime    time.Time
	PriceCents uint32
}

// ErrUnschedulableMovie reports a movie whose duration can never fit
// the daily window. Such a movie would be deferred to the next day
// forever, so the whole run fails instead with a diagnostic.
type ErrUnschedulableMovie struct {
	Title       string
	DurationMin uint32
}

func (e ErrUnschedulableMovie) Error() string {
	return fmt.Sprintf("movie %q (%d min) cannot fit the daily scheduling window", e.Title, e.DurationMin)
}

// Generate plans showtimes for one cinema across opts.HorizonDays
// days, starting on the calendar day after `from` (UTC). Movies are
// consumed front-to-back from a working queue seeded with the ordered
// catalogue; a movie that does not fit the remainder of a day is
// returned to the back of the queue and the day ends (deferred, not
// dropped). The queue is refilled from the full catalogue only at day
// boundaries, never mid-day.
//
// The fit test replicates the established program policy: a candidate
// screening is committed only when its end time's clock hour is
// strictly below opts.CloseHour. The minute field does not
// participate, so a screening ending 21:59 fits while one ending
// 22:00 does not.
//
// An empty catalogue yields zero drafts and no error. A movie with a
// non-positive duration, or one too long to ever fit the daily
// window, fails the whole run with ErrUnschedulableMovie.
func Generate(cinemaID uint64, priceCents uint32, movies []model.Movie, from time.Time, opts Options) ([]Draft, error) {
	if len(movies) == 0 {
		return nil, nil
	}
	window := time.Duration(opts.CloseHour-opts.OpenHour) * time.Hour
	for _, m := range movies {
		if m.DurationMin == 0 || m.Duration() >= window {
			return nil, ErrUnschedulableMovie{Title: m.Title, DurationMin: m.DurationMin}
		}
	}

	// Working queue, seeded with the full catalogue in order.
	queue := make([]model.Movie, len(movies))
	copy(queue, movies)

	from = from.UTC()
	cursor := time.Date(from.Year(), from.Month(), from.Day(), opts.OpenHour, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	var drafts []Draft
	for day := 0; day < opts.HorizonDays; day++ {
		for len(queue) > 0 {
			movie := queue[0]
			queue = queue[1:]
			end := cursor.Add(movie.Duration())
			if end.Hour() >= opts.CloseHour {
				// Does not fit today: back of the rotation, day over.
				queue = append(queue, movie)
				break
			}
			drafts = append(drafts, Draft{
				CinemaID:   cinemaID,
				MovieID:    movie.ID,
				StartTime:  cursor,
				EndTime:    end,
				PriceCents: priceCents,
			})
			cursor = end.Add(opts.Gap)
		}

		// Next day, doors-open hour.
		cursor = time.Date(cursor.Year(), cursor.Month(), cursor.Day(), opts.OpenHour, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

		// Drained the catalogue mid-day: start the rotation over.
		if len(queue) == 0 {
			queue = append(queue, movies...)
		}
	}
	return drafts, nil
}
