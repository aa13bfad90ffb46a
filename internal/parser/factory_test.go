package parser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bridge/internal/config"
	"bridge/internal/parser"
	"bridge/internal/port"
)

type stubTranslator struct{ model string }

func (s *stubTranslator) Translate(_ context.Context, _ port.TranslateInput) (*port.TranslateOutput, error) {
	return &port.TranslateOutput{ModelUsed: s.model}, nil
}

type stubChat struct{}

func (stubChat) Chat(_ context.Context, _ port.ChatInput) (string, error) {
	return "ok", nil
}

func TestFactory_RegisterAndCreate(t *testing.T) {
	parser.RegisterTranslator("test-provider", func(cfg *config.CollaboratorConfig) (port.DocumentTranslator, error) {
		return &stubTranslator{model: cfg.DefaultModel}, nil
	})
	parser.RegisterChatModel("test-provider", func(_ *config.CollaboratorConfig) (port.ChatModel, error) {
		return stubChat{}, nil
	})
	cfg := &config.CollaboratorConfig{Provider: "test-provider", DefaultModel: "test-model"}

	tr, err := parser.NewTranslator(cfg)
	require.NoError(t, err)
	out, err := tr.Translate(context.Background(), port.TranslateInput{})
	require.NoError(t, err)
	assert.Equal(t, "test-model", out.ModelUsed)

	cm, err := parser.NewChatModel(cfg)
	require.NoError(t, err)
	assert.NotNil(t, cm)
}

func TestFactory_UnknownProvider(t *testing.T) {
	cfg := &config.CollaboratorConfig{Provider: "nonexistent-provider-xyz"}

	tr, err := parser.NewTranslator(cfg)
	assert.Nil(t, tr)
	assert.ErrorContains(t, err, "unknown collaborator provider")

	cm, err := parser.NewChatModel(cfg)
	assert.Nil(t, cm)
	assert.Error(t, err)
}

func TestFactory_FallbackModelsBuildChain(t *testing.T) {
	parser.RegisterTranslator("chain-provider", func(cfg *config.CollaboratorConfig) (port.DocumentTranslator, error) {
		return &stubTranslator{model: cfg.DefaultModel}, nil
	})
	cfg := &config.CollaboratorConfig{
		Provider:       "chain-provider",
		DefaultModel:   "primary",
		FallbackModels: []string{"secondary"},
	}

	tr, err := parser.NewTranslator(cfg)
	require.NoError(t, err)
	_, isChain := tr.(*parser.FallbackTranslator)
	assert.True(t, isChain)

	out, err := tr.Translate(context.Background(), port.TranslateInput{})
	require.NoError(t, err)
	assert.Equal(t, "primary", out.ModelUsed)
}
