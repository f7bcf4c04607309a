package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTransactor runs the unit of work inline. The error configured on the
// expectation simulates a failure to begin the transaction.
type MockTransactor struct {
	mock.Mock
	Commits   int
	Rollbacks int
}

func (m *MockTransactor) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}

	err := fn(ctx)
	if err != nil {
		m.Rollbacks++
		return err
	}

	m.Commits++
	return nil
}
