package booking

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osaze/cinema-booking/internal/model"
)

// fakeStore mimics the MySQL repository semantics in memory: reads
// see committed state only, and CreateBookings enforces the
// (showtime, seat) uniqueness atomically under a mutex, rolling back
// the whole batch on conflict.
type fakeStore struct {
	mu    sync.Mutex
	seats map[uint64]model.Seat
	// booked maps showtimeID -> seatID -> ticket number.
	booked   map[uint64]map[uint64]string
	payments int
}

func newFakeStore(cinemaID uint64, seatIDs ...uint64) *fakeStore {
	s := &fakeStore{
		seats:  make(map[uint64]model.Seat),
		booked: make(map[uint64]map[uint64]string),
	}
	for _, id := range seatIDs {
		s.seats[id] = model.Seat{ID: id, CinemaID: cinemaID}
	}
	return s
}

func (s *fakeStore) SeatsByIDs(_ context.Context, cinemaID uint64, seatIDs []uint64) (map[uint64]model.Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[uint64]model.Seat)
	for _, id := range seatIDs {
		if seat, ok := s.seats[id]; ok && seat.CinemaID == cinemaID {
			out[id] = seat
		}
	}
	return out, nil
}

func (s *fakeStore) BookedSeatIDs(_ context.Context, showtimeID uint64) (map[uint64]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[uint64]struct{})
	for id := range s.booked[showtimeID] {
		out[id] = struct{}{}
	}
	return out, nil
}

func (s *fakeStore) CreateBookings(_ context.Context, showtimeID, _ uint64, _ uint32, drafts []Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	taken := s.booked[showtimeID]
	if taken == nil {
		taken = make(map[uint64]string)
		s.booked[showtimeID] = taken
	}
	for _, d := range drafts {
		if _, ok := taken[d.SeatID]; ok {
			return SeatTakenError{SeatID: d.SeatID}
		}
	}
	for _, d := range drafts {
		taken[d.SeatID] = d.TicketNumber
		s.payments++
	}
	return nil
}

// cancel mirrors a booking deletion: the (showtime, seat) row goes
// away and the payment cascades with it, like the foreign key does in
// MySQL.
func (s *fakeStore) cancel(showtimeID, seatID uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.booked[showtimeID][seatID]; !ok {
		return false
	}
	delete(s.booked[showtimeID], seatID)
	s.payments--
	return true
}

func (s *fakeStore) bookedCount(showtimeID uint64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.booked[showtimeID])
}

var testShowtime = &model.Showtime{ID: 11, CinemaID: 3, PriceCents: 1500}

func TestBookSuccess(t *testing.T) {
	store := newFakeStore(3, 1, 2, 3)
	tr := NewTransactor(store)

	res, err := tr.Book(context.Background(), testShowtime, []uint64{1, 2}, 42)
	require.NoError(t, err)
	assert.False(t, res.Rejected())
	require.Len(t, res.TicketNumbers, 2)
	assert.NotEqual(t, res.TicketNumbers[0], res.TicketNumbers[1])
	assert.Equal(t, 2, store.bookedCount(testShowtime.ID))
	assert.Equal(t, 2, store.payments)
}

func TestBookDeduplicatesSeatIDs(t *testing.T) {
	store := newFakeStore(3, 1)
	tr := NewTransactor(store)

	res, err := tr.Book(context.Background(), testShowtime, []uint64{1, 1, 1}, 42)
	require.NoError(t, err)
	require.Len(t, res.TicketNumbers, 1)
	assert.Equal(t, 1, store.bookedCount(testShowtime.ID))
}

func TestBookUnknownSeat(t *testing.T) {
	store := newFakeStore(3, 1)
	tr := NewTransactor(store)

	res, err := tr.Book(context.Background(), testShowtime, []uint64{99}, 42)
	require.NoError(t, err)
	assert.True(t, res.Rejected())
	assert.Equal(t, []string{"The seat with ID 99 does not exist."}, res.Errors)
	assert.Zero(t, store.bookedCount(testShowtime.ID))
}

func TestBookSameSeatTwice(t *testing.T) {
	store := newFakeStore(3, 1)
	tr := NewTransactor(store)
	ctx := context.Background()

	first, err := tr.Book(ctx, testShowtime, []uint64{1}, 42)
	require.NoError(t, err)
	require.Len(t, first.TicketNumbers, 1)

	second, err := tr.Book(ctx, testShowtime, []uint64{1}, 43)
	require.NoError(t, err)
	assert.True(t, second.Rejected())
	assert.Equal(t, []string{"The seat with ID 1 is already booked for this showtime."}, second.Errors)
	assert.Equal(t, 1, store.bookedCount(testShowtime.ID), "seat must not be double-booked")
}

func TestBookAllOrNothing(t *testing.T) {
	store := newFakeStore(3, 1, 2)
	tr := NewTransactor(store)
	ctx := context.Background()

	_, err := tr.Book(ctx, testShowtime, []uint64{2}, 7)
	require.NoError(t, err)

	// Seat 1 is free, seat 2 is taken: the whole request must fail
	// and seat 1 must remain bookable.
	res, err := tr.Book(ctx, testShowtime, []uint64{1, 2}, 42)
	require.NoError(t, err)
	assert.True(t, res.Rejected())
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "The seat with ID 2 is already booked for this showtime.", res.Errors[0])
	assert.Empty(t, res.TicketNumbers)
	assert.Equal(t, 1, store.bookedCount(testShowtime.ID))

	retry, err := tr.Book(ctx, testShowtime, []uint64{1}, 42)
	require.NoError(t, err)
	assert.False(t, retry.Rejected())
}

func TestBookSeatFreeForOtherShowtime(t *testing.T) {
	store := newFakeStore(3, 1)
	tr := NewTransactor(store)
	ctx := context.Background()

	res, err := tr.Book(ctx, testShowtime, []uint64{1}, 42)
	require.NoError(t, err)
	require.False(t, res.Rejected())

	other := &model.Showtime{ID: 12, CinemaID: 3, PriceCents: 1500}
	res, err = tr.Book(ctx, other, []uint64{1}, 42)
	require.NoError(t, err)
	assert.False(t, res.Rejected(), "booked status is per showtime, not per seat")
}

func TestCancelFreesSeatForRebooking(t *testing.T) {
	store := newFakeStore(3, 1)
	tr := NewTransactor(store)
	ctx := context.Background()

	first, err := tr.Book(ctx, testShowtime, []uint64{1}, 42)
	require.NoError(t, err)
	require.False(t, first.Rejected())
	require.Equal(t, 1, store.payments)

	// Cancellation removes the booking and its payment together.
	require.True(t, store.cancel(testShowtime.ID, 1))
	assert.Zero(t, store.bookedCount(testShowtime.ID))
	assert.Zero(t, store.payments, "payment must be removed with its booking")

	// The freed seat is bookable again for the same showtime, by a
	// different user and with a fresh ticket.
	second, err := tr.Book(ctx, testShowtime, []uint64{1}, 43)
	require.NoError(t, err)
	assert.False(t, second.Rejected())
	require.Len(t, second.TicketNumbers, 1)
	assert.NotEqual(t, first.TicketNumbers[0], second.TicketNumbers[0])
	assert.Equal(t, 1, store.payments)
}

func TestBookConcurrentRivals(t *testing.T) {
	const rounds = 50
	for i := 0; i < rounds; i++ {
		store := newFakeStore(3, 1)
		tr := NewTransactor(store)

		var wg sync.WaitGroup
		results := make([]Result, 2)
		for n := 0; n < 2; n++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				res, err := tr.Book(context.Background(), testShowtime, []uint64{1}, uint64(100+n))
				assert.NoError(t, err)
				results[n] = res
			}(n)
		}
		wg.Wait()

		wins := 0
		for _, res := range results {
			if !res.Rejected() {
				wins++
				require.Len(t, res.TicketNumbers, 1)
			} else {
				assert.Contains(t, res.Errors[0], "already booked")
			}
		}
		assert.Equal(t, 1, wins, "exactly one rival may win the seat")
		assert.Equal(t, 1, store.bookedCount(testShowtime.ID))
	}
}
