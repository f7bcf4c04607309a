package mocks

import (
	"context"

	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishBookingConfirmed(ctx context.Context, event domain.BookingConfirmedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
