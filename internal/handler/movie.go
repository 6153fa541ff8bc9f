package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/osaze/cinema-booking/internal/repository"
)

// MovieHandler serves the public movie browse endpoints.
type MovieHandler struct {
	MovieRepo    *repository.MovieRepo
	ShowtimeRepo *repository.ShowtimeRepo
}

// NewMovieHandler constructs a MovieHandler with the provided
// repositories. All dependencies must be non-nil.
func NewMovieHandler(movieRepo *repository.MovieRepo, showtimeRepo *repository.ShowtimeRepo) *MovieHandler {
	if movieRepo == nil || showtimeRepo == nil {
		panic("nil repository passed to NewMovieHandler")
	}
	return &MovieHandler{MovieRepo: movieRepo, ShowtimeRepo: showtimeRepo}
}

type movieListItem struct {
	ID           uint64     `json:"id"`
	Title        string     `json:"title"`
	DurationMin  uint32     `json:"duration"`
	Rating       float64    `json:"rating"`
	Poster       string     `json:"poster"`
	ReleaseDate  string     `json:"release_date"`
	NextShowtime *time.Time `json:"next_showtime,omitempty"`
}

// List handles GET /v1/movies. Each movie carries the start time of
// its next future screening; movies with no scheduled future showtime
// omit the field.
func (h *MovieHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	movies, err := h.MovieRepo.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load movies"})
	}
	next, err := h.ShowtimeRepo.NextStartTimes(ctx, time.Now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load showtimes"})
	}

	items := make([]movieListItem, 0, len(movies))
	for _, m := range movies {
		item := movieListItem{
			ID:          m.ID,
			Title:       m.Title,
			DurationMin: m.DurationMin,
			Rating:      m.Rating,
			Poster:      m.Poster,
			ReleaseDate: m.ReleaseDate.Format("2006-01-02"),
		}
		if start, ok := next[m.ID]; ok {
			s := start
			item.NextShowtime = &s
		}
		items = append(items, item)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

type movieShowtime struct {
	ID        uint64    `json:"id"`
	StartTime time.Time `json:"start_time"`
}

// Get handles GET /v1/movies/:id. The detail view adds the overview
// and backdrop plus all future showtimes ordered by start time.
func (h *MovieHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	ctx := c.Request().Context()
	movie, err := h.MovieRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load movie"})
	}
	upcoming, err := h.ShowtimeRepo.ListFutureByMovie(ctx, id, time.Now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load showtimes"})
	}

	showtimes := make([]movieShowtime, 0, len(upcoming))
	for _, s := range upcoming {
		showtimes = append(showtimes, movieShowtime{ID: s.ID, StartTime: s.StartTime})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":           movie.ID,
		"title":        movie.Title,
		"overview":     movie.Overview,
		"duration":     movie.DurationMin,
		"rating":       movie.Rating,
		"poster":       movie.Poster,
		"backdrop":     movie.Backdrop,
		"release_date": movie.ReleaseDate.Format("2006-01-02"),
		"showtimes":    showtimes,
	})
}
