// Package queue defines message payloads exchanged over the message
// broker plus the publisher and consumer for them.
package queue

// TicketsIssuedEvent is published after a booking request commits. It
// carries enough information for downstream consumers to log, notify
// or feed analytics without querying the primary database.
type TicketsIssuedEvent struct {
	ShowtimeID    uint64   `json:"showtime_id"`
	UserID        uint64   `json:"user_id"`
	MovieTitle    string   `json:"movie_title"`
	CinemaName    string   `json:"cinema_name"`
	StartTime     string   `json:"start_time"`
	SeatLabels    []string `json:"seats"`
	TicketNumbers []string `json:"ticket_numbers"`
	AmountCents   uint32   `json:"amount_cents"`
	IssuedAt      string   `json:"issued_at"`
}
