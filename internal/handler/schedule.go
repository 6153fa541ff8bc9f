package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/osaze/cinema-booking/internal/repository"
	"github.com/osaze/cinema-booking/internal/schedule"
)

// ScheduleHandler runs the showtime scheduler for a cinema. Each run
// replaces the cinema's entire timetable with a fresh seven-day
// program built from its attached movie rotation.
type ScheduleHandler struct {
	CinemaRepo   *repository.CinemaRepo
	MovieRepo    *repository.MovieRepo
	ShowtimeRepo *repository.ShowtimeRepo
	Options      schedule.Options
}

// NewScheduleHandler constructs a ScheduleHandler. All repositories
// must be non-nil.
func NewScheduleHandler(cinemaRepo *repository.CinemaRepo, movieRepo *repository.MovieRepo, showtimeRepo *repository.ShowtimeRepo) *ScheduleHandler {
	if cinemaRepo == nil || movieRepo == nil || showtimeRepo == nil {
		panic("nil repository passed to NewScheduleHandler")
	}
	return &ScheduleHandler{
		CinemaRepo:   cinemaRepo,
		MovieRepo:    movieRepo,
		ShowtimeRepo: showtimeRepo,
		Options:      schedule.DefaultOptions(),
	}
}

// Run handles POST /v1/cinemas/:id/schedule. A movie the program can
// never place (zero duration, or longer than the daily window) fails
// the run before anything is written, so the previous timetable stays
// in place.
func (h *ScheduleHandler) Run(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cinema id"})
	}
	ctx := c.Request().Context()
	cinema, err := h.CinemaRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCinemaNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cinema not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load cinema"})
	}
	movies, err := h.MovieRepo.ListByCinema(ctx, cinema.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load movies"})
	}

	drafts, err := schedule.Generate(cinema.ID, cinema.PriceCents, movies, time.Now().UTC(), h.Options)
	if err != nil {
		var unsched schedule.ErrUnschedulableMovie
		if errors.As(err, &unsched) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": unsched.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to generate schedule"})
	}

	n, err := h.ShowtimeRepo.ReplaceForCinema(ctx, cinema.ID, drafts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to store schedule"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"cinema_id": cinema.ID,
		"created":   n,
	})
}
