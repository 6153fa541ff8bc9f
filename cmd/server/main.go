package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/osaze/cinema-booking/internal/booking"
	"github.com/osaze/cinema-booking/internal/catalog"
	"github.com/osaze/cinema-booking/internal/config"
	"github.com/osaze/cinema-booking/internal/database"
	"github.com/osaze/cinema-booking/internal/handler"
	"github.com/osaze/cinema-booking/internal/queue"
	"github.com/osaze/cinema-booking/internal/repository"
	"github.com/osaze/cinema-booking/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable: caching and rate limiting disabled")
	}

	cinemaRepo := repository.NewCinemaRepo(db)
	movieRepo := repository.NewMovieRepo(db)
	seatRepo := repository.NewSeatRepo(db)
	showtimeRepo := repository.NewShowtimeRepo(db)
	bookingRepo := repository.NewBookingRepo(db)

	transactor := booking.NewTransactor(bookingRepo)
	tmdb := catalog.NewClient(cfg.TMDBKey)

	h := router.Handlers{
		Movie:    handler.NewMovieHandler(movieRepo, showtimeRepo),
		Showtime: handler.NewShowtimeHandler(showtimeRepo, cinemaRepo, movieRepo, seatRepo, bookingRepo, transactor),
		Booking:  handler.NewBookingHandler(bookingRepo),
		Cinema:   handler.NewCinemaHandler(cinemaRepo),
		Schedule: handler.NewScheduleHandler(cinemaRepo, movieRepo, showtimeRepo),
		Catalog:  handler.NewCatalogHandler(tmdb, movieRepo),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	router.Register(e, h, cfg.JWTSecret, rdb)

	// Ticket audit trail; reconnects on its own, never blocks startup.
	go func() {
		if err := queue.StartTicketConsumer(); err != nil {
			log.Printf("ticket consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
