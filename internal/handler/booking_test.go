package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osaze/cinema-booking/internal/repository"
)

// fakeBookingStore keeps bookings in memory, keyed by booking ID, and
// applies the same ownership rule as the MySQL store: deleting a
// booking that does not exist or belongs to another user reports
// ErrBookingNotFound.
type fakeBookingStore struct {
	owners map[uint64]uint64 // booking ID -> owning user ID
}

func (s *fakeBookingStore) ListByUser(_ context.Context, userID uint64) ([]repository.BookingDetail, error) {
	var out []repository.BookingDetail
	for id, owner := range s.owners {
		if owner == userID {
			out = append(out, repository.BookingDetail{ID: id})
		}
	}
	return out, nil
}

func (s *fakeBookingStore) DeleteByIDAndUser(_ context.Context, id, userID uint64) error {
	if owner, ok := s.owners[id]; !ok || owner != userID {
		return repository.ErrBookingNotFound
	}
	delete(s.owners, id)
	return nil
}

func deleteBookingRequest(h *BookingHandler, bookingID string, userID interface{}) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/v1/bookings/"+bookingID, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/bookings/:id")
	c.SetParamNames("id")
	c.SetParamValues(bookingID)
	if userID != nil {
		c.Set("user_id", userID)
	}
	_ = h.Delete(c)
	return rec
}

func TestDeleteBookingByOwner(t *testing.T) {
	store := &fakeBookingStore{owners: map[uint64]uint64{5: 42}}
	h := NewBookingHandler(store)

	rec := deleteBookingRequest(h, "5", "42")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, store.owners, "booking must be gone after cancellation")

	// A second delete of the same booking is a 404, not a silent no-op.
	rec = deleteBookingRequest(h, "5", "42")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteBookingOwnedByAnotherUser(t *testing.T) {
	store := &fakeBookingStore{owners: map[uint64]uint64{5: 42}}
	h := NewBookingHandler(store)

	rec := deleteBookingRequest(h, "5", "99")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Len(t, store.owners, 1, "another user's booking must survive")
}

func TestDeleteBookingInvalidID(t *testing.T) {
	h := NewBookingHandler(&fakeBookingStore{owners: map[uint64]uint64{}})
	rec := deleteBookingRequest(h, "abc", "42")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteBookingUnauthenticated(t *testing.T) {
	h := NewBookingHandler(&fakeBookingStore{owners: map[uint64]uint64{5: 42}})
	rec := deleteBookingRequest(h, "5", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListBookingsOnlyOwn(t *testing.T) {
	store := &fakeBookingStore{owners: map[uint64]uint64{1: 42, 2: 42, 3: 99}}
	h := NewBookingHandler(store)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "42")

	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []repository.BookingDetail `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Items, 2)
}
