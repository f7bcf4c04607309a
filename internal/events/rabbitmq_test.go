package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/showtime-booking/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublishing(t *testing.T) {
	event := domain.BookingConfirmedEvent{
		BookingID:   uuid.MustParse("7f9e2b8c-1d4a-4e6f-9a3b-5c2d1e0f4a7b"),
		UserID:      "user-42",
		ShowtimeID:  uuid.MustParse("5b0b7c2e-6f53-4c1e-9b7a-2f8f6f1d1a01"),
		TheaterName: "Hall 1",
		ShowDate:    "2026-03-14",
		ShowTime:    "19:30:00",
		SeatIDs:     []uuid.UUID{uuid.MustParse("a1d1f3a0-0000-4000-8000-000000000001")},
		TotalAmount: decimal.RequireFromString("12.50"),
		ConfirmedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("UTC+3", 3*60*60))

	msg, err := newPublishing(event, now)
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, event.BookingID.String(), msg.MessageId)
	assert.Equal(t, now.UTC(), msg.Timestamp)

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Body, &body))

	assert.Equal(t, "user-42", body["user_id"])
	assert.Equal(t, "12.5", body["total_amount"])
	assert.Equal(t, []any{"a1d1f3a0-0000-4000-8000-000000000001"}, body["seat_ids"])
}

func TestNopPublisher(t *testing.T) {
	var p domain.EventPublisher = NopPublisher{}

	assert.NoError(t, p.PublishBookingConfirmed(context.Background(), domain.BookingConfirmedEvent{}))
}
