package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/metinatakli/showtime-booking/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// GetOrInitializeSeats returns the seat map of a showtime ordered by row and
// number, creating the seat set on first access.
func (c *Coordinator) GetOrInitializeSeats(ctx context.Context, showtimeID uuid.UUID) (*domain.ShowtimeSeats, error) {
	ctx, span := c.tracer.Start(ctx, "booking.GetOrInitializeSeats", trace.WithAttributes(
		attribute.String("showtime.id", showtimeID.String()),
	))
	defer span.End()

	cached, version, cacheable := c.cachedSeatMap(ctx, showtimeID)
	if cached != nil {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached, nil
	}

	showtime, err := c.showtimes.GetById(ctx, showtimeID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, fmt.Errorf("showtime %s: %w", showtimeID, domain.ErrRecordNotFound)
		}

		return nil, storeUnavailable(err)
	}

	seats, err := c.seats.ListSeats(ctx, showtimeID)
	if err != nil {
		return nil, storeUnavailable(err)
	}

	if len(seats) == 0 {
		c.logger.Info("initializing seats for showtime", "showtime_id", showtimeID, "total_seats", showtime.TotalSeats)

		seats, err = c.seats.EnsureSeatsExist(ctx, showtimeID, showtime.TotalSeats)
		if err != nil {
			return nil, storeUnavailable(err)
		}
	}

	showtimeSeats := &domain.ShowtimeSeats{
		Showtime: *showtime,
		Seats:    seats,
	}

	if cacheable {
		c.storeSeatMap(ctx, showtimeSeats, version)
	}

	return showtimeSeats, nil
}

// cachedSeatMap returns the cached seat map on a hit. On a miss it returns
// the cache version to store the fresh read under, and whether the cache can
// be written at all.
func (c *Coordinator) cachedSeatMap(ctx context.Context, showtimeID uuid.UUID) (*domain.ShowtimeSeats, int64, bool) {
	if c.cache == nil {
		return nil, 0, false
	}

	seats, version, ok, err := c.cache.Get(ctx, showtimeID)
	if err != nil {
		c.logger.Warn("failed to read seat map cache", "showtime_id", showtimeID, "error", err)
		return nil, 0, false
	}

	if ok {
		return seats, version, false
	}

	return nil, version, true
}

// storeSeatMap caches seats unless a booking invalidated the showtime after
// version was read, in which case seats may already be stale.
func (c *Coordinator) storeSeatMap(ctx context.Context, seats *domain.ShowtimeSeats, version int64) {
	stored, err := c.cache.Set(ctx, seats, version)
	if err != nil {
		c.logger.Warn("failed to cache seat map", "showtime_id", seats.Showtime.ID, "error", err)
		return
	}

	if !stored {
		c.logger.Debug("seat map changed while reading, not cached", "showtime_id", seats.Showtime.ID)
	}
}

// ListBookingsForUser returns the user's bookings, newest first, with seats,
// showtime and movie resolved.
func (c *Coordinator) ListBookingsForUser(
	ctx context.Context,
	userID string,
	pagination domain.Pagination) ([]domain.BookingDetail, *domain.Metadata, error) {

	if userID == "" {
		return nil, nil, domain.ErrMissingIdentity
	}

	bookings, metadata, err := c.bookings.GetBookingsByUserId(ctx, userID, pagination)
	if err != nil {
		return nil, nil, storeUnavailable(err)
	}

	return bookings, metadata, nil
}
