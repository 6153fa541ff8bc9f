// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/osaze/cinema-booking/internal/config"
	"github.com/osaze/cinema-booking/internal/handler"
	"github.com/osaze/cinema-booking/internal/middleware"
)

// Handlers bundles every handler the route table needs.
type Handlers struct {
	Movie    *handler.MovieHandler
	Showtime *handler.ShowtimeHandler
	Booking  *handler.BookingHandler
	Cinema   *handler.CinemaHandler
	Schedule *handler.ScheduleHandler
	Catalog  *handler.CatalogHandler
}

// Register sets up the full route table. Browse endpoints are public
// and cached; booking endpoints require a valid token; scheduling and
// catalogue management additionally require the OPERATOR role. The
// rate limiter covers everything, including the public surface.
func Register(e *echo.Echo, h Handlers, jwtSecret string, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// Public browse surface.
	pub := e.Group("/v1", limiter)
	pub.GET("/movies", h.Movie.List, cache)
	pub.GET("/movies/:id", h.Movie.Get, cache)
	pub.GET("/cinemas", h.Cinema.List, cache)
	pub.GET("/showtimes/:id", h.Showtime.Get)

	// Authenticated surface: booking and the caller's own bookings.
	auth := e.Group("/v1", limiter, middleware.JWTAuth(jwtSecret))
	auth.PATCH("/showtimes/:id", h.Showtime.Book)
	auth.GET("/bookings", h.Booking.List)
	auth.DELETE("/bookings/:id", h.Booking.Delete)

	// Operator surface: cinema setup, catalogue refresh, scheduling.
	op := e.Group("/v1", limiter, middleware.JWTAuth(jwtSecret), middleware.RequireRole("OPERATOR"))
	op.POST("/cinemas", h.Cinema.Create)
	op.POST("/cinemas/:id/schedule", h.Schedule.Run)
	op.POST("/catalog/refresh", h.Catalog.Refresh)
}
