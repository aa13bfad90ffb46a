package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bridge/internal/domain"
	"bridge/internal/export"
	"bridge/internal/highlight"
	"bridge/internal/service"
)

// MockWorkspaceService is a mock implementation of service.WorkspaceService.
type MockWorkspaceService struct {
	mock.Mock
}

func (m *MockWorkspaceService) Create(ctx context.Context) (*service.CreatedWorkspace, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CreatedWorkspace), args.Error(1)
}

func (m *MockWorkspaceService) Get(ctx context.Context, id uuid.UUID) (*service.WorkspaceView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WorkspaceView), args.Error(1)
}

func (m *MockWorkspaceService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWorkspaceService) Process(ctx context.Context, id uuid.UUID, input *service.ProcessInput) (*service.WorkspaceView, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WorkspaceView), args.Error(1)
}

func (m *MockWorkspaceService) Reset(ctx context.Context, id uuid.UUID) (*service.WorkspaceView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WorkspaceView), args.Error(1)
}

func (m *MockWorkspaceService) Original(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockWorkspaceService) Highlights(ctx context.Context, id uuid.UUID) (*service.HighlightView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.HighlightView), args.Error(1)
}

func (m *MockWorkspaceService) Hover(ctx context.Context, id uuid.UUID, action int) (*highlight.Activation, error) {
	args := m.Called(ctx, id, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*highlight.Activation), args.Error(1)
}

func (m *MockWorkspaceService) Leave(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWorkspaceService) ToggleDone(ctx context.Context, id uuid.UUID, action int) (bool, error) {
	args := m.Called(ctx, id, action)
	return args.Bool(0), args.Error(1)
}

func (m *MockWorkspaceService) Translation(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockWorkspaceService) Chat(ctx context.Context, id uuid.UUID) (*service.ChatView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ChatView), args.Error(1)
}

func (m *MockWorkspaceService) SendChat(ctx context.Context, id uuid.UUID, message string) (*service.ChatReply, error) {
	args := m.Called(ctx, id, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ChatReply), args.Error(1)
}

func (m *MockWorkspaceService) SetChatLanguage(ctx context.Context, id uuid.UUID, code domain.LanguageCode) (*service.ChatView, error) {
	args := m.Called(ctx, id, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ChatView), args.Error(1)
}

func (m *MockWorkspaceService) Checklist(ctx context.Context, id uuid.UUID) (*export.Checklist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*export.Checklist), args.Error(1)
}

func (m *MockWorkspaceService) ReapIdle(now time.Time, ttl time.Duration) int {
	args := m.Called(now, ttl)
	return args.Int(0)
}

func (m *MockWorkspaceService) Count() int {
	args := m.Called()
	return args.Int(0)
}
