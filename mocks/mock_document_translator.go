package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bridge/internal/port"
)

// MockDocumentTranslator is a mock implementation of port.DocumentTranslator.
type MockDocumentTranslator struct {
	mock.Mock
}

func (m *MockDocumentTranslator) Translate(ctx context.Context, input port.TranslateInput) (*port.TranslateOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.TranslateOutput), args.Error(1)
}
