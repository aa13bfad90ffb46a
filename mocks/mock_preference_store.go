package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockPreferenceStore is a mock implementation of port.PreferenceStore.
type MockPreferenceStore struct {
	mock.Mock
}

func (m *MockPreferenceStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockPreferenceStore) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockPreferenceStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
