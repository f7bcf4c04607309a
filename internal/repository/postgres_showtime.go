package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/showtime-booking/internal/domain"
)

type PostgresShowtimeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowtimeRepository(db *pgxpool.Pool) *PostgresShowtimeRepository {
	return &PostgresShowtimeRepository{
		db: db,
	}
}

func (p *PostgresShowtimeRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.Showtime, error) {
	query := `
		SELECT id, movie_id, theater_name, show_date, show_time::text, price, total_seats, available_seats
		FROM showtimes
		WHERE id = $1
	`

	var showtime domain.Showtime
	var price pgtype.Numeric

	err := conn(ctx, p.db).QueryRow(ctx, query, id).Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.TheaterName,
		&showtime.Date,
		&showtime.Time,
		&price,
		&showtime.TotalSeats,
		&showtime.AvailableSeats,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, classifyError(err)
	}

	showtime.Price = toDecimal(price)

	return &showtime, nil
}

func (p *PostgresShowtimeRepository) DecrementAvailable(ctx context.Context, id uuid.UUID, n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: cannot decrement available seats by %d", domain.ErrInvalidSelection, n)
	}

	query := `
		UPDATE showtimes
		SET available_seats = available_seats - $2
		WHERE id = $1 AND available_seats >= $2
	`

	tag, err := conn(ctx, p.db).Exec(ctx, query, id, n)
	if err != nil {
		return classifyError(err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: fewer than %d seats available for showtime %s", domain.ErrConflict, n, id)
	}

	return nil
}
