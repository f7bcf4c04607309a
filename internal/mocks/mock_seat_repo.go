package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockSeatRepo struct {
	mock.Mock
}

func (m *MockSeatRepo) EnsureSeatsExist(ctx context.Context, showtimeID uuid.UUID, totalSeats int) ([]domain.Seat, error) {
	args := m.Called(ctx, showtimeID, totalSeats)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Seat), args.Error(1)
}

func (m *MockSeatRepo) ListSeats(ctx context.Context, showtimeID uuid.UUID) ([]domain.Seat, error) {
	args := m.Called(ctx, showtimeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Seat), args.Error(1)
}

func (m *MockSeatRepo) ClaimSeats(
	ctx context.Context,
	showtimeID uuid.UUID,
	seatIDs []uuid.UUID,
	bookingID uuid.UUID) error {

	args := m.Called(ctx, showtimeID, seatIDs, bookingID)
	return args.Error(0)
}
