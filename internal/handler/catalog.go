package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/osaze/cinema-booking/internal/catalog"
	"github.com/osaze/cinema-booking/internal/model"
	"github.com/osaze/cinema-booking/internal/repository"
)

// CatalogHandler refreshes the movie catalogue from the external
// now-playing feed. The refresh is destructive: the existing movies
// and everything hanging off them are replaced wholesale.
type CatalogHandler struct {
	Client    *catalog.Client
	MovieRepo *repository.MovieRepo
}

// NewCatalogHandler constructs a CatalogHandler. Both dependencies
// must be non-nil.
func NewCatalogHandler(client *catalog.Client, movieRepo *repository.MovieRepo) *CatalogHandler {
	if client == nil || movieRepo == nil {
		panic("nil dependency passed to NewCatalogHandler")
	}
	return &CatalogHandler{Client: client, MovieRepo: movieRepo}
}

// Refresh handles POST /v1/catalog/refresh. The upstream fetch happens
// before any write, so a feed outage leaves the current catalogue
// untouched.
func (h *CatalogHandler) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	records, err := h.Client.NowPlaying(ctx)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "catalogue fetch failed"})
	}

	movies := make([]model.Movie, 0, len(records))
	for _, rec := range records {
		movies = append(movies, model.Movie{
			Title:       rec.Title,
			DurationMin: rec.RuntimeMin,
			Rating:      rec.Rating,
			Overview:    rec.Overview,
			Poster:      rec.Poster,
			Backdrop:    rec.Backdrop,
			ExternalID:  rec.ExternalID,
			ReleaseDate: rec.ReleaseDate,
		})
	}
	if err := h.MovieRepo.ReplaceAll(ctx, movies); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to store catalogue"})
	}
	return c.JSON(http.StatusOK, echo.Map{"imported": len(movies)})
}
