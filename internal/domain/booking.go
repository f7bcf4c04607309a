package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
)

type Booking struct {
	ID          uuid.UUID
	UserID      string
	ShowtimeID  uuid.UUID
	TotalAmount decimal.Decimal
	Status      BookingStatus
	SeatIDs     []uuid.UUID
	CreatedAt   time.Time
}

type BookingSeat struct {
	BookingID uuid.UUID
	SeatID    uuid.UUID
}

// BookingDetail is a booking with its seats, showtime and movie resolved.
type BookingDetail struct {
	Booking  Booking
	Showtime Showtime
	Movie    Movie
	Seats    []Seat
}

// AttemptState tracks a single booking attempt. Only Committed and Aborted
// are terminal.
type AttemptState string

const (
	AttemptValidating AttemptState = "validating"
	AttemptCommitting AttemptState = "committing"
	AttemptCommitted  AttemptState = "committed"
	AttemptAborted    AttemptState = "aborted"
)

type BookingRepository interface {
	// Create inserts the booking row and populates its ID and CreatedAt.
	Create(ctx context.Context, booking *Booking) error
	CreateBookingSeats(ctx context.Context, bookingID uuid.UUID, seatIDs []uuid.UUID) error
	GetBookingsByUserId(ctx context.Context, userID string, pagination Pagination) ([]BookingDetail, *Metadata, error)
}

// Transactor runs fn as a single unit of work. Repository calls made with the
// context passed to fn join that unit; it is committed only when fn returns nil.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
