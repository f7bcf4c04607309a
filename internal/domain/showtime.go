package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Showtime struct {
	ID             uuid.UUID
	MovieID        uuid.UUID
	TheaterName    string
	Date           time.Time
	Time           string
	Price          decimal.Decimal
	TotalSeats     int
	AvailableSeats int
}

// ShowtimeRepository reads showtimes from the catalog and governs the
// available-seat counter.
type ShowtimeRepository interface {
	GetById(ctx context.Context, id uuid.UUID) (*Showtime, error)
	// DecrementAvailable lowers available_seats by n only if the result stays
	// non-negative, otherwise it returns ErrConflict.
	DecrementAvailable(ctx context.Context, id uuid.UUID, n int) error
}
