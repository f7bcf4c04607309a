package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingConfirmedEvent struct {
	BookingID   uuid.UUID       `json:"booking_id"`
	UserID      string          `json:"user_id"`
	ShowtimeID  uuid.UUID       `json:"showtime_id"`
	MovieID     uuid.UUID       `json:"movie_id"`
	TheaterName string          `json:"theater_name"`
	ShowDate    string          `json:"show_date"`
	ShowTime    string          `json:"show_time"`
	SeatIDs     []uuid.UUID     `json:"seat_ids"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ConfirmedAt time.Time       `json:"confirmed_at"`
}

type EventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error
}
