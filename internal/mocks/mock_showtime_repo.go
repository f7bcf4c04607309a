package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockShowtimeRepo struct {
	mock.Mock
}

func (m *MockShowtimeRepo) GetById(ctx context.Context, id uuid.UUID) (*domain.Showtime, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Showtime), args.Error(1)
}

func (m *MockShowtimeRepo) DecrementAvailable(ctx context.Context, id uuid.UUID, n int) error {
	args := m.Called(ctx, id, n)
	return args.Error(0)
}
