package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/osaze/cinema-booking/internal/repository"
)

// BookingStore is the slice of the booking repository this handler
// needs. It is an interface so the HTTP mapping can be tested against
// an in-memory store.
type BookingStore interface {
	ListByUser(ctx context.Context, userID uint64) ([]repository.BookingDetail, error)
	DeleteByIDAndUser(ctx context.Context, id, userID uint64) error
}

var _ BookingStore = (*repository.BookingRepo)(nil)

// BookingHandler serves the authenticated user's own bookings.
type BookingHandler struct {
	Store BookingStore
}

// NewBookingHandler constructs a BookingHandler. The store must be
// non-nil.
func NewBookingHandler(store BookingStore) *BookingHandler {
	if store == nil {
		panic("nil store passed to NewBookingHandler")
	}
	return &BookingHandler{Store: store}
}

// List handles GET /v1/bookings, returning the caller's bookings
// newest first.
func (h *BookingHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Store.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	if items == nil {
		items = []repository.BookingDetail{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Delete handles DELETE /v1/bookings/:id. Only the booking's owner can
// cancel it; the seat is immediately free for rebooking afterwards.
func (h *BookingHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	if err := h.Store.DeleteByIDAndUser(c.Request().Context(), id, userID); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel booking"})
	}
	return c.NoContent(http.StatusNoContent)
}
