package database

import (
	"context"
	"database/sql"
)

// schema lists the DDL applied at startup. Statements are idempotent
// so a restart against an existing database is a no-op. Two unique
// keys matter beyond plain structure: seats are unique per
// (cinema, row, number), and bookings are unique per
// (showtime, seat) -- the latter is what keeps concurrent booking
// requests from double-selling a seat.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS cinemas (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name          VARCHAR(200)    NOT NULL,
		seat_rows     INT UNSIGNED    NOT NULL,
		seats_per_row INT UNSIGNED    NOT NULL,
		price_cents   INT UNSIGNED    NOT NULL DEFAULT 1500,
		created_at    TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS movies (
		id           BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		title        VARCHAR(200)    NOT NULL,
		duration_min INT UNSIGNED    NOT NULL,
		rating       DOUBLE          NOT NULL DEFAULT 0,
		overview     TEXT            NOT NULL,
		poster       VARCHAR(512)    NOT NULL DEFAULT '',
		backdrop     VARCHAR(512)    NOT NULL DEFAULT '',
		external_id  BIGINT          NOT NULL,
		release_date DATE            NOT NULL,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS cinema_movies (
		cinema_id BIGINT UNSIGNED NOT NULL,
		movie_id  BIGINT UNSIGNED NOT NULL,
		position  INT UNSIGNED    NOT NULL,
		PRIMARY KEY (cinema_id, movie_id),
		CONSTRAINT fk_cm_cinema FOREIGN KEY (cinema_id) REFERENCES cinemas (id) ON DELETE CASCADE,
		CONSTRAINT fk_cm_movie  FOREIGN KEY (movie_id)  REFERENCES movies (id)  ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS seats (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		cinema_id   BIGINT UNSIGNED NOT NULL,
		seat_row    INT UNSIGNED    NOT NULL,
		seat_number INT UNSIGNED    NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_seat_position (cinema_id, seat_row, seat_number),
		CONSTRAINT fk_seat_cinema FOREIGN KEY (cinema_id) REFERENCES cinemas (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS showtimes (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		cinema_id   BIGINT UNSIGNED NOT NULL,
		movie_id    BIGINT UNSIGNED NOT NULL,
		start_time  DATETIME        NOT NULL,
		end_time    DATETIME        NOT NULL,
		price_cents INT UNSIGNED    NOT NULL,
		PRIMARY KEY (id),
		KEY idx_showtime_movie_start (movie_id, start_time),
		CONSTRAINT fk_st_cinema FOREIGN KEY (cinema_id) REFERENCES cinemas (id) ON DELETE CASCADE,
		CONSTRAINT fk_st_movie  FOREIGN KEY (movie_id)  REFERENCES movies (id)  ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id       BIGINT UNSIGNED NOT NULL,
		showtime_id   BIGINT UNSIGNED NOT NULL,
		seat_id       BIGINT UNSIGNED NOT NULL,
		ticket_number CHAR(36)        NOT NULL,
		created_at    TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_booking_seat (showtime_id, seat_id),
		UNIQUE KEY uq_booking_ticket (ticket_number),
		KEY idx_booking_user (user_id),
		CONSTRAINT fk_bk_showtime FOREIGN KEY (showtime_id) REFERENCES showtimes (id) ON DELETE CASCADE,
		CONSTRAINT fk_bk_seat     FOREIGN KEY (seat_id)     REFERENCES seats (id)     ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS payments (
		id           BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		booking_id   BIGINT UNSIGNED NOT NULL,
		amount_cents INT UNSIGNED    NOT NULL,
		paid         BOOLEAN         NOT NULL DEFAULT FALSE,
		created_at   TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_payment_booking (booking_id),
		CONSTRAINT fk_pay_booking FOREIGN KEY (booking_id) REFERENCES bookings (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates all tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
