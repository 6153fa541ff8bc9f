package model

import "time"

// Movie represents a film ingested from the external catalogue.
// Movies are immutable once ingested; a catalogue refresh replaces
// the whole table atomically rather than editing rows in place.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – original title from the catalogue.
//  DurationMin – runtime in minutes; always positive.
//  Rating      – average vote on a 0–10 scale.
//  Overview    – synopsis text.
//  Poster      – absolute URL of the poster image.
//  Backdrop    – absolute URL of the backdrop image.
//  ExternalID  – identifier in the external catalogue (TMDB).
//  ReleaseDate – theatrical release date.
type Movie struct {
	ID          uint64    // movies.id
	Title       string    // movies.title
	DurationMin uint32    // movies.duration_min
	Rating      float64   // movies.rating
	Overview    string    // movies.overview
	Poster      string    // movies.poster
	Backdrop    string    // movies.backdrop
	ExternalID  int64     // movies.external_id
	ReleaseDate time.Time // movies.release_date
}

// Duration returns the movie runtime as a time.Duration.
func (m Movie) Duration() time.Duration {
	return time.Duration(m.DurationMin) * time.Minute
}
