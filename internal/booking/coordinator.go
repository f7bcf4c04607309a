// Package booking turns seat selections into confirmed bookings. A booking
// row, its seat claims, its join records and the showtime counter decrement
// are committed as one unit or not at all.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/metinatakli/showtime-booking/internal/booking"
	// DefaultMaxSeatsPerBooking leaves the selection size unbounded.
	DefaultMaxSeatsPerBooking = 0
)

type Coordinator struct {
	logger    *slog.Logger
	tx        domain.Transactor
	showtimes domain.ShowtimeRepository
	seats     domain.SeatRepository
	bookings  domain.BookingRepository
	cache     domain.SeatMapCache
	publisher domain.EventPublisher

	maxSeatsPerBooking int

	tracer   trace.Tracer
	attempts metric.Int64Counter
}

type Option func(*Coordinator)

func WithSeatMapCache(cache domain.SeatMapCache) Option {
	return func(c *Coordinator) {
		c.cache = cache
	}
}

func WithEventPublisher(publisher domain.EventPublisher) Option {
	return func(c *Coordinator) {
		c.publisher = publisher
	}
}

// WithMaxSeatsPerBooking caps the number of seats in one booking. Zero or a
// negative n removes the cap.
func WithMaxSeatsPerBooking(n int) Option {
	return func(c *Coordinator) {
		c.maxSeatsPerBooking = max(n, 0)
	}
}

func NewCoordinator(
	logger *slog.Logger,
	tx domain.Transactor,
	showtimes domain.ShowtimeRepository,
	seats domain.SeatRepository,
	bookings domain.BookingRepository,
	opts ...Option) *Coordinator {

	c := &Coordinator{
		logger:             logger,
		tx:                 tx,
		showtimes:          showtimes,
		seats:              seats,
		bookings:           bookings,
		maxSeatsPerBooking: DefaultMaxSeatsPerBooking,
		tracer:             otel.Tracer(instrumentationName),
	}

	for _, opt := range opts {
		opt(c)
	}

	attempts, err := otel.Meter(instrumentationName).Int64Counter(
		"booking.attempts",
		metric.WithDescription("Booking attempts by terminal outcome"),
	)
	if err != nil {
		logger.Warn("failed to create booking attempts counter", "error", err)
	}
	c.attempts = attempts

	return c
}

// CreateBooking books seatIDs of the given showtime for userID.
//
// Errors are one of domain.ErrMissingIdentity, domain.ErrInvalidSelection,
// domain.ErrRecordNotFound, domain.ErrSeatsNoLongerAvailable or
// domain.ErrStoreUnavailable (matched with errors.Is). A failed call leaves
// no booking, no booked seat and no counter change behind.
func (c *Coordinator) CreateBooking(
	ctx context.Context,
	userID string,
	showtimeID uuid.UUID,
	seatIDs []uuid.UUID) (*domain.Booking, error) {

	ctx, span := c.tracer.Start(ctx, "booking.CreateBooking", trace.WithAttributes(
		attribute.String("showtime.id", showtimeID.String()),
		attribute.Int("booking.seat_count", len(seatIDs)),
	))
	defer span.End()

	logger := c.logger.With("showtime_id", showtimeID, "user_id", userID, "seat_count", len(seatIDs))
	logger.Debug("booking attempt", "state", domain.AttemptValidating)

	booking, err := c.createBooking(ctx, logger, userID, showtimeID, seatIDs)

	state := domain.AttemptCommitted
	if err != nil {
		state = domain.AttemptAborted

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	c.recordAttempt(ctx, state, err)
	logger.Debug("booking attempt", "state", state)

	return booking, err
}

func (c *Coordinator) createBooking(
	ctx context.Context,
	logger *slog.Logger,
	userID string,
	showtimeID uuid.UUID,
	seatIDs []uuid.UUID) (*domain.Booking, error) {

	if userID == "" {
		return nil, domain.ErrMissingIdentity
	}

	err := c.validateSelection(seatIDs)
	if err != nil {
		return nil, err
	}

	showtime, err := c.showtimes.GetById(ctx, showtimeID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, fmt.Errorf("showtime %s: %w", showtimeID, domain.ErrRecordNotFound)
		}

		return nil, storeUnavailable(err)
	}

	booking := &domain.Booking{
		UserID:      userID,
		ShowtimeID:  showtimeID,
		TotalAmount: showtime.Price.Mul(decimal.NewFromInt(int64(len(seatIDs)))),
		Status:      domain.BookingStatusConfirmed,
		SeatIDs:     append([]uuid.UUID(nil), seatIDs...),
	}

	logger.Debug("booking attempt", "state", domain.AttemptCommitting)

	err = c.tx.RunInTx(ctx, func(ctx context.Context) error {
		err := c.bookings.Create(ctx, booking)
		if err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}

		err = c.seats.ClaimSeats(ctx, showtimeID, seatIDs, booking.ID)
		if err != nil {
			return fmt.Errorf("claim seats: %w", err)
		}

		err = c.bookings.CreateBookingSeats(ctx, booking.ID, seatIDs)
		if err != nil {
			return fmt.Errorf("insert booking seats: %w", err)
		}

		err = c.showtimes.DecrementAvailable(ctx, showtimeID, len(seatIDs))
		if err != nil {
			return fmt.Errorf("decrement available seats: %w", err)
		}

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			logger.Info("booking lost seat contention", "error", err)
			// the caller is expected to re-read the seat map next
			c.invalidateSeatMap(ctx, showtimeID)

			return nil, fmt.Errorf("%w: %w", domain.ErrSeatsNoLongerAvailable, err)
		case errors.Is(err, domain.ErrRecordNotFound):
			return nil, err
		default:
			logger.Error("booking commit failed", "error", err)
			return nil, storeUnavailable(err)
		}
	}

	logger.Info("booking confirmed", "booking_id", booking.ID, "total_amount", booking.TotalAmount.String())

	c.invalidateSeatMap(ctx, showtimeID)
	c.publishConfirmed(ctx, booking, showtime)

	return booking, nil
}

func (c *Coordinator) validateSelection(seatIDs []uuid.UUID) error {
	if len(seatIDs) == 0 {
		return fmt.Errorf("%w: at least one seat must be selected", domain.ErrInvalidSelection)
	}

	if c.maxSeatsPerBooking > 0 && len(seatIDs) > c.maxSeatsPerBooking {
		return fmt.Errorf("%w: at most %d seats can be booked at once",
			domain.ErrInvalidSelection, c.maxSeatsPerBooking)
	}

	seen := make(map[uuid.UUID]struct{}, len(seatIDs))

	for _, id := range seatIDs {
		if id == uuid.Nil {
			return fmt.Errorf("%w: seat id must not be empty", domain.ErrInvalidSelection)
		}

		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: seat %s selected more than once", domain.ErrInvalidSelection, id)
		}

		seen[id] = struct{}{}
	}

	return nil
}

func (c *Coordinator) publishConfirmed(ctx context.Context, booking *domain.Booking, showtime *domain.Showtime) {
	if c.publisher == nil {
		return
	}

	event := domain.BookingConfirmedEvent{
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		ShowtimeID:  booking.ShowtimeID,
		MovieID:     showtime.MovieID,
		TheaterName: showtime.TheaterName,
		ShowDate:    showtime.Date.Format("2006-01-02"),
		ShowTime:    showtime.Time,
		SeatIDs:     booking.SeatIDs,
		TotalAmount: booking.TotalAmount,
		ConfirmedAt: booking.CreatedAt,
	}

	err := c.publisher.PublishBookingConfirmed(ctx, event)
	if err != nil {
		c.logger.Error("failed to publish booking confirmed event", "booking_id", booking.ID, "error", err)
	}
}

func (c *Coordinator) invalidateSeatMap(ctx context.Context, showtimeID uuid.UUID) {
	if c.cache == nil {
		return
	}

	err := c.cache.Invalidate(ctx, showtimeID)
	if err != nil {
		c.logger.Warn("failed to invalidate seat map cache", "showtime_id", showtimeID, "error", err)
	}
}

func (c *Coordinator) recordAttempt(ctx context.Context, state domain.AttemptState, err error) {
	if c.attempts == nil {
		return
	}

	c.attempts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("state", string(state)),
		attribute.String("outcome", outcome(err)),
	))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "committed"
	case errors.Is(err, domain.ErrSeatsNoLongerAvailable):
		return "seats_no_longer_available"
	case errors.Is(err, domain.ErrInvalidSelection):
		return "invalid_selection"
	case errors.Is(err, domain.ErrRecordNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrMissingIdentity):
		return "missing_identity"
	default:
		return "store_unavailable"
	}
}

func storeUnavailable(err error) error {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return err
	}

	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}
