package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/osaze/cinema-booking/internal/model"
	"github.com/osaze/cinema-booking/internal/repository"
)

// CinemaHandler serves cinema creation and listing. Seat grids are
// derived from the cinema geometry at creation time and never edited.
type CinemaHandler struct {
	CinemaRepo *repository.CinemaRepo
}

// NewCinemaHandler constructs a CinemaHandler. The repository must be
// non-nil.
func NewCinemaHandler(cinemaRepo *repository.CinemaRepo) *CinemaHandler {
	if cinemaRepo == nil {
		panic("nil repository passed to NewCinemaHandler")
	}
	return &CinemaHandler{CinemaRepo: cinemaRepo}
}

type createCinemaRequest struct {
	Name        string `json:"name"`
	Rows        uint32 `json:"rows"`
	SeatsPerRow uint32 `json:"seats_per_row"`
	PriceCents  uint32 `json:"price_cents"`
}

// Create handles POST /v1/cinemas.
func (h *CinemaHandler) Create(c echo.Context) error {
	var req createCinemaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Name == "" || req.Rows == 0 || req.SeatsPerRow == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, rows and seats_per_row are required"})
	}

	cinema := &model.Cinema{
		Name:        req.Name,
		Rows:        req.Rows,
		SeatsPerRow: req.SeatsPerRow,
		PriceCents:  req.PriceCents,
	}
	if err := h.CinemaRepo.Create(c.Request().Context(), cinema); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create cinema"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":            cinema.ID,
		"name":          cinema.Name,
		"rows":          cinema.Rows,
		"seats_per_row": cinema.SeatsPerRow,
		"price_cents":   cinema.PriceCents,
		"capacity":      cinema.Capacity(),
	})
}

type cinemaListItem struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	Capacity   uint32 `json:"capacity"`
	PriceCents uint32 `json:"price_cents"`
}

// List handles GET /v1/cinemas.
func (h *CinemaHandler) List(c echo.Context) error {
	cinemas, err := h.CinemaRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load cinemas"})
	}
	items := make([]cinemaListItem, 0, len(cinemas))
	for _, cn := range cinemas {
		items = append(items, cinemaListItem{
			ID:         cn.ID,
			Name:       cn.Name,
			Capacity:   cn.Capacity(),
			PriceCents: cn.PriceCents,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
