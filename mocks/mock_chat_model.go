package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bridge/internal/port"
)

// MockChatModel is a mock implementation of port.ChatModel.
type MockChatModel struct {
	mock.Mock
}

func (m *MockChatModel) Chat(ctx context.Context, input port.ChatInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}
