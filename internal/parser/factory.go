package parser

import (
	"fmt"

	"bridge/internal/config"
	"bridge/internal/port"
)

// TranslatorFactory creates a DocumentTranslator from collaborator config.
type TranslatorFactory func(cfg *config.CollaboratorConfig) (port.DocumentTranslator, error)

// ChatModelFactory creates a ChatModel from collaborator config.
type ChatModelFactory func(cfg *config.CollaboratorConfig) (port.ChatModel, error)

// registries of provider factories, populated via RegisterTranslator/RegisterChatModel.
var (
	translators = map[string]TranslatorFactory{}
	chatModels  = map[string]ChatModelFactory{}
)

// RegisterTranslator registers a translator factory by provider name.
func RegisterTranslator(name string, factory TranslatorFactory) {
	translators[name] = factory
}

// RegisterChatModel registers a chat model factory by provider name.
func RegisterChatModel(name string, factory ChatModelFactory) {
	chatModels[name] = factory
}

// NewTranslator creates a DocumentTranslator using the registered factory.
// When fallback models are configured, one translator is built per model and
// the set is wrapped in a FallbackTranslator, default model first.
func NewTranslator(cfg *config.CollaboratorConfig) (port.DocumentTranslator, error) {
	factory, ok := translators[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown collaborator provider: %s", cfg.Provider)
	}
	if len(cfg.FallbackModels) == 0 {
		return factory(cfg)
	}

	models := append([]string{cfg.DefaultModel}, cfg.FallbackModels...)
	chain := make([]port.DocumentTranslator, 0, len(models))
	names := make([]string, 0, len(models))
	for _, model := range models {
		modelCfg := *cfg
		modelCfg.DefaultModel = model
		modelCfg.FallbackModels = nil
		t, err := factory(&modelCfg)
		if err != nil {
			return nil, fmt.Errorf("creating translator for %s: %w", model, err)
		}
		chain = append(chain, t)
		names = append(names, cfg.Provider+"/"+model)
	}
	return NewFallbackTranslator(chain, names), nil
}

// NewChatModel creates a ChatModel using the registered factory.
func NewChatModel(cfg *config.CollaboratorConfig) (port.ChatModel, error) {
	factory, ok := chatModels[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown collaborator provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
