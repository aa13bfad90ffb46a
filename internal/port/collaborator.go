package port

import (
	"context"

	"bridge/internal/domain"
)

// TranslateInput carries one encoded document and its target language.
type TranslateInput struct {
	Document       domain.EncodedDocument
	TargetLanguage domain.LanguageCode
	TargetName     string // display name used in the prompt
}

// TranslateOutput is a contract-valid result plus request metadata.
type TranslateOutput struct {
	Result     *domain.BridgeResult
	ModelUsed  string
	PromptUsed string
}

// DocumentTranslator performs the combined translate + summarize call.
type DocumentTranslator interface {
	Translate(ctx context.Context, input TranslateInput) (*TranslateOutput, error)
}

// ChatInput is one follow-up turn: prior history, the system instruction and
// the new message (already combined with the grounding context).
type ChatInput struct {
	History           []domain.ChatMessage
	SystemInstruction string
	Message           string
}

// ChatModel answers one chat turn.
type ChatModel interface {
	Chat(ctx context.Context, input ChatInput) (string, error)
}
