package domain

import (
	"context"
	"strconv"

	"github.com/google/uuid"
)

// SeatsPerRow is the fixed width of every row in a generated seat layout.
const SeatsPerRow = 10

type Seat struct {
	ID         uuid.UUID
	ShowtimeID uuid.UUID
	Row        string
	Number     int
	Booked     bool
	BookingID  *uuid.UUID
}

func (s Seat) Label() string {
	return s.Row + strconv.Itoa(s.Number)
}

// ShowtimeSeats is the seat map of a showtime together with the showtime it
// belongs to.
type ShowtimeSeats struct {
	Showtime Showtime
	Seats    []Seat
}

type SeatPosition struct {
	Row    string
	Number int
}

// SeatLayout returns the deterministic positions for a showtime with
// totalSeats seats: rows of SeatsPerRow labelled A..Z, AA, AB, ... with the
// last row possibly partial.
func SeatLayout(totalSeats int) []SeatPosition {
	if totalSeats <= 0 {
		return nil
	}

	positions := make([]SeatPosition, totalSeats)

	for i := range positions {
		positions[i] = SeatPosition{
			Row:    RowLabel(i / SeatsPerRow),
			Number: i%SeatsPerRow + 1,
		}
	}

	return positions
}

// RowLabel converts a zero-based row index into its spreadsheet-style label.
func RowLabel(index int) string {
	var label []byte

	for n := index + 1; n > 0; n = (n - 1) / 26 {
		label = append([]byte{byte('A' + (n-1)%26)}, label...)
	}

	return string(label)
}

type SeatRepository interface {
	// EnsureSeatsExist creates the full seat set for a showtime when none
	// exists yet and returns the showtime's seats. Concurrent callers never
	// produce more than totalSeats seats.
	EnsureSeatsExist(ctx context.Context, showtimeID uuid.UUID, totalSeats int) ([]Seat, error)
	ListSeats(ctx context.Context, showtimeID uuid.UUID) ([]Seat, error)
	// ClaimSeats books every given seat for bookingID, or none of them. It
	// returns ErrConflict when any seat is already booked and
	// ErrRecordNotFound when any seat does not belong to the showtime.
	// Unknown ids are NotFound rather than Conflict so a stale selection is
	// told apart from a lost race.
	ClaimSeats(ctx context.Context, showtimeID uuid.UUID, seatIDs []uuid.UUID, bookingID uuid.UUID) error
}

type SeatMapCache interface {
	// Get returns the cached seat map. On a miss it returns the version that
	// a following Set must present.
	Get(ctx context.Context, showtimeID uuid.UUID) (*ShowtimeSeats, int64, bool, error)
	// Set stores seats only if the showtime was not invalidated since Get
	// returned version, and reports whether it did.
	Set(ctx context.Context, seats *ShowtimeSeats, version int64) (bool, error)
	Invalidate(ctx context.Context, showtimeID uuid.UUID) error
}
