package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/osaze/cinema-booking/internal/booking"
	"github.com/osaze/cinema-booking/internal/model"
	"github.com/osaze/cinema-booking/internal/queue"
	"github.com/osaze/cinema-booking/internal/repository"
)

// ShowtimeHandler serves the showtime detail view and the seat
// booking operation against it. Booking itself is delegated to the
// transactor; the handler only binds the request, maps the result to
// HTTP and publishes the tickets.issued event after a commit.
type ShowtimeHandler struct {
	ShowtimeRepo *repository.ShowtimeRepo
	CinemaRepo   *repository.CinemaRepo
	MovieRepo    *repository.MovieRepo
	SeatRepo     *repository.SeatRepo
	BookingRepo  *repository.BookingRepo
	Transactor   *booking.Transactor
}

// NewShowtimeHandler constructs a ShowtimeHandler with the provided
// dependencies. All of them must be non-nil.
func NewShowtimeHandler(showtimeRepo *repository.ShowtimeRepo, cinemaRepo *repository.CinemaRepo, movieRepo *repository.MovieRepo, seatRepo *repository.SeatRepo, bookingRepo *repository.BookingRepo, transactor *booking.Transactor) *ShowtimeHandler {
	if showtimeRepo == nil || cinemaRepo == nil || movieRepo == nil || seatRepo == nil || bookingRepo == nil || transactor == nil {
		panic("nil dependency passed to NewShowtimeHandler")
	}
	return &ShowtimeHandler{
		ShowtimeRepo: showtimeRepo,
		CinemaRepo:   cinemaRepo,
		MovieRepo:    movieRepo,
		SeatRepo:     seatRepo,
		BookingRepo:  bookingRepo,
		Transactor:   transactor,
	}
}

type seatView struct {
	ID       uint64 `json:"id"`
	Label    string `json:"label"`
	IsBooked bool   `json:"is_booked"`
}

type showtimeView struct {
	ID        uint64    `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Price     uint32    `json:"price_cents"`
	Movie     struct {
		Title  string `json:"title"`
		Poster string `json:"poster"`
	} `json:"movie"`
	Cinema struct {
		Name     string `json:"name"`
		Capacity uint32 `json:"capacity"`
	} `json:"cinema"`
	Seats []seatView `json:"seats"`
}

// buildView loads the showtime's cinema, movie and seat grid, deriving
// each seat's booked flag from the bookings relation for this
// showtime only.
func (h *ShowtimeHandler) buildView(ctx context.Context, st *model.Showtime) (*showtimeView, *model.Cinema, *model.Movie, error) {
	cinema, err := h.CinemaRepo.GetByID(ctx, st.CinemaID)
	if err != nil {
		return nil, nil, nil, err
	}
	movie, err := h.MovieRepo.GetByID(ctx, st.MovieID)
	if err != nil {
		return nil, nil, nil, err
	}
	seats, err := h.SeatRepo.ListByCinema(ctx, st.CinemaID)
	if err != nil {
		return nil, nil, nil, err
	}
	booked, err := h.BookingRepo.BookedSeatIDs(ctx, st.ID)
	if err != nil {
		return nil, nil, nil, err
	}

	view := &showtimeView{
		ID:        st.ID,
		StartTime: st.StartTime,
		EndTime:   st.EndTime,
		Price:     st.PriceCents,
	}
	view.Movie.Title = movie.Title
	view.Movie.Poster = movie.Poster
	view.Cinema.Name = cinema.Name
	view.Cinema.Capacity = cinema.Capacity()
	view.Seats = make([]seatView, 0, len(seats))
	for _, s := range seats {
		_, taken := booked[s.ID]
		view.Seats = append(view.Seats, seatView{ID: s.ID, Label: s.Label(), IsBooked: taken})
	}
	return view, cinema, movie, nil
}

// Get handles GET /v1/showtimes/:id.
func (h *ShowtimeHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
	}
	ctx := c.Request().Context()
	st, err := h.ShowtimeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrShowtimeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load showtime"})
	}
	view, _, _, err := h.buildView(ctx, st)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load showtime"})
	}
	return c.JSON(http.StatusOK, view)
}

// Book handles PATCH /v1/showtimes/:id. The body carries the seat IDs
// to book: {"book_seat": [1, 2]}. The whole request succeeds or fails
// as one unit; on rejection the response lists one error string per
// offending seat and no booking is created at all.
func (h *ShowtimeHandler) Book(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
	}
	var body struct {
		BookSeat []uint64 `json:"book_seat"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(body.BookSeat) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "book_seat is required"})
	}

	ctx := c.Request().Context()
	st, err := h.ShowtimeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrShowtimeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load showtime"})
	}

	res, err := h.Transactor.Book(ctx, st, body.BookSeat, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to book seats"})
	}
	if res.Rejected() {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": res.Errors})
	}

	view, cinema, movie, err := h.buildView(ctx, st)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load showtime"})
	}

	// Booked seat labels for the event payload.
	labels := make([]string, 0, len(body.BookSeat))
	want := make(map[uint64]struct{}, len(body.BookSeat))
	for _, sid := range body.BookSeat {
		want[sid] = struct{}{}
	}
	for _, s := range view.Seats {
		if _, ok := want[s.ID]; ok {
			labels = append(labels, s.Label)
		}
	}

	// Best-effort notification; the booking is committed either way.
	go func() {
		ev := queue.TicketsIssuedEvent{
			ShowtimeID:    st.ID,
			UserID:        userID,
			MovieTitle:    movie.Title,
			CinemaName:    cinema.Name,
			StartTime:     st.StartTime.Format(time.RFC3339),
			SeatLabels:    labels,
			TicketNumbers: res.TicketNumbers,
			AmountCents:   st.PriceCents * uint32(len(res.TicketNumbers)),
			IssuedAt:      time.Now().UTC().Format(time.RFC3339),
		}
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := queue.PublishTicketsIssued(pubCtx, ev); err != nil {
			log.Printf("showtime: publish tickets event failed: %v", err)
		}
	}()

	return c.JSON(http.StatusOK, echo.Map{
		"showtime":       view,
		"ticket_numbers": res.TicketNumbers,
	})
}
