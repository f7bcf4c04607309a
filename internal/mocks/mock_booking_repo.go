package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepo struct {
	mock.Mock
}

// Create assigns the ID returned by the expectation, mimicking RETURNING id.
func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	if id, ok := args.Get(0).(uuid.UUID); ok {
		booking.ID = id
	}
	return args.Error(1)
}

func (m *MockBookingRepo) CreateBookingSeats(ctx context.Context, bookingID uuid.UUID, seatIDs []uuid.UUID) error {
	args := m.Called(ctx, bookingID, seatIDs)
	return args.Error(0)
}

func (m *MockBookingRepo) GetBookingsByUserId(
	ctx context.Context,
	userID string,
	pagination domain.Pagination) ([]domain.BookingDetail, *domain.Metadata, error) {

	args := m.Called(ctx, userID, pagination)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.BookingDetail), args.Get(1).(*domain.Metadata), args.Error(2)
}
