package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// MockIdleReaper is a mock implementation of service.IdleReaper.
type MockIdleReaper struct {
	mock.Mock
}

func (m *MockIdleReaper) ReapIdle(now time.Time, ttl time.Duration) int {
	args := m.Called(now, ttl)
	return args.Int(0)
}
