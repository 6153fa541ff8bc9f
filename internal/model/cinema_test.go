package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatGridRowMajor(t *testing.T) {
	c := Cinema{ID: 7, Rows: 2, SeatsPerRow: 3}
	seats := c.SeatGrid()
	require.Len(t, seats, 6)
	assert.Equal(t, uint32(6), c.Capacity())

	// Row 1 first, then row 2, seats numbered from 1 within each row.
	assert.Equal(t, Seat{CinemaID: 7, Row: 1, Number: 1}, seats[0])
	assert.Equal(t, Seat{CinemaID: 7, Row: 1, Number: 3}, seats[2])
	assert.Equal(t, Seat{CinemaID: 7, Row: 2, Number: 1}, seats[3])
	assert.Equal(t, Seat{CinemaID: 7, Row: 2, Number: 3}, seats[5])
}

func TestRowLabel(t *testing.T) {
	cases := map[uint32]string{
		1:  "A",
		2:  "B",
		26: "Z",
		27: "AA",
		28: "AB",
		52: "AZ",
		53: "BA",
	}
	for row, want := range cases {
		assert.Equal(t, want, RowLabel(row), "row %d", row)
	}
	assert.Equal(t, "", RowLabel(0))
}

func TestSeatLabel(t *testing.T) {
	assert.Equal(t, "A3", Seat{Row: 1, Number: 3}.Label())
	assert.Equal(t, "AB12", Seat{Row: 28, Number: 12}.Label())
}
