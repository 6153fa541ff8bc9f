package model

import "strconv"

// Seat describes a physical seat in a cinema's grid. Seats are
// uniquely identified by (cinema, row, number). A seat carries no
// booked flag: booked status is derived per showtime from the
// bookings relation, so the same seat can be free for one showtime
// and taken for another.
//
// Fields:
//  ID       – primary key identifier.
//  CinemaID – cinema to which this seat belongs.
//  Row      – 1-based row index within the grid.
//  Number   – 1-based seat number within the row.
type Seat struct {
	ID       uint64 // seats.id
	CinemaID uint64 // seats.cinema_id
	Row      uint32 // seats.row
	Number   uint32 // seats.number
}

// Label renders a human-readable seat label such as "A3" or "AB12",
// combining an alphabetical row label with the seat number.
func (s Seat) Label() string {
	return RowLabel(s.Row) + strconv.FormatUint(uint64(s.Number), 10)
}

// RowLabel converts a 1-based row index into an alphabetical label:
// 1 -> A, 26 -> Z, 27 -> AA.
func RowLabel(row uint32) string {
	if row == 0 {
		return ""
	}
	i := int(row) - 1
	var out []byte
	for {
		out = append(out, byte('A'+i%26))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return string(out)
}
