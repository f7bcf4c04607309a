package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockSeatMapCache struct {
	mock.Mock
}

func (m *MockSeatMapCache) Get(ctx context.Context, showtimeID uuid.UUID) (*domain.ShowtimeSeats, int64, bool, error) {
	args := m.Called(ctx, showtimeID)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Bool(2), args.Error(3)
	}
	return args.Get(0).(*domain.ShowtimeSeats), args.Get(1).(int64), args.Bool(2), args.Error(3)
}

func (m *MockSeatMapCache) Set(ctx context.Context, seats *domain.ShowtimeSeats, version int64) (bool, error) {
	args := m.Called(ctx, seats, version)
	return args.Bool(0), args.Error(1)
}

func (m *MockSeatMapCache) Invalidate(ctx context.Context, showtimeID uuid.UUID) error {
	args := m.Called(ctx, showtimeID)
	return args.Error(0)
}
