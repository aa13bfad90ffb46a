// Package chat runs follow-up conversations grounded in one processed document.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"bridge/internal/domain"
	"bridge/internal/language"
	"bridge/internal/parser"
	"bridge/internal/port"
)

// Fixed replies inserted into the transcript.
const (
	ApologyMessage = "Sorry, I had trouble connecting. Please try again."
	FallbackReply  = "I'm sorry, I couldn't generate a response."
)

// BuildContext serializes the grounding block sent with every turn: the full
// summary as indented JSON followed by the full translated markup.
func BuildContext(result *domain.BridgeResult) (string, error) {
	summary, err := json.MarshalIndent(result.Summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing summary: %w", err)
	}
	return "DOCUMENT SUMMARY:\n" + string(summary) + "\n\nTRANSLATED DOCUMENT TEXT:\n" + result.TranslationHTML, nil
}

// BuildMessage combines the grounding block with the user's question.
func BuildMessage(documentContext, question string) string {
	return "Context: " + documentContext + "\n\nUser Question: " + question
}

// Session is the conversation about one BridgeResult. Turns are strictly
// sequential: Send fails with domain.ErrChatBusy while a turn is in flight.
type Session struct {
	model     port.ChatModel
	grounding *domain.BridgeResult
	catalog   *language.Catalog
	now       func() time.Time

	mu       sync.Mutex
	lang     domain.LanguageCode
	messages []domain.ChatMessage
	busy     bool
}

// NewSession starts a conversation with a greeting in lang.
func NewSession(model port.ChatModel, grounding *domain.BridgeResult, lang domain.LanguageCode, catalog *language.Catalog) *Session {
	if _, ok := catalog.Lookup(lang); !ok {
		lang = domain.DefaultLanguage
	}
	s := &Session{
		model:     model,
		grounding: grounding,
		catalog:   catalog,
		now:       time.Now,
		lang:      lang,
	}
	s.messages = []domain.ChatMessage{{Role: domain.RoleModel, Text: catalog.Greeting(lang), CreatedAt: s.now()}}
	return s
}

// Grounding returns the result the session answers about.
func (s *Session) Grounding() *domain.BridgeResult {
	return s.grounding
}

// Send runs one turn and returns the reply that was appended to the
// transcript. A failed call is absorbed: ApologyMessage is appended and
// returned with a nil error.
func (s *Session) Send(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", domain.ErrEmptyMessage
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return "", domain.ErrChatBusy
	}
	s.busy = true
	lang := s.lang
	// The greeting is local UI text and never sent as history.
	history := make([]domain.ChatMessage, len(s.messages)-1)
	copy(history, s.messages[1:])
	s.messages = append(s.messages, domain.ChatMessage{Role: domain.RoleUser, Text: message, CreatedAt: s.now()})
	s.mu.Unlock()

	reply, err := s.turn(ctx, history, lang, message)
	if err != nil {
		log.Warnf("chat.Send: %v", &domain.ChatTurnError{Err: err})
		reply = ApologyMessage
	} else if strings.TrimSpace(reply) == "" {
		reply = FallbackReply
	}

	s.mu.Lock()
	s.messages = append(s.messages, domain.ChatMessage{Role: domain.RoleModel, Text: reply, CreatedAt: s.now()})
	s.busy = false
	s.mu.Unlock()

	return reply, nil
}

func (s *Session) turn(ctx context.Context, history []domain.ChatMessage, lang domain.LanguageCode, message string) (string, error) {
	docContext, err := BuildContext(s.grounding)
	if err != nil {
		return "", err
	}
	return s.model.Chat(ctx, port.ChatInput{
		History:           history,
		SystemInstruction: parser.ChatInstruction(s.catalog.DisplayName(lang)),
		Message:           BuildMessage(docContext, message),
	})
}

// SetLanguage changes the response language for subsequent turns.
func (s *Session) SetLanguage(code domain.LanguageCode) error {
	if _, ok := s.catalog.Lookup(code); !ok {
		return domain.ErrInvalidLanguage
	}
	s.mu.Lock()
	s.lang = code
	s.mu.Unlock()
	return nil
}

// Language returns the active response language.
func (s *Session) Language() domain.LanguageCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}

// Busy reports whether a turn is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Messages returns a copy of the transcript, greeting first.
func (s *Session) Messages() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// QuickPrompts returns the canned questions for the active language.
func (s *Session) QuickPrompts() []language.QuickPrompt {
	return s.catalog.QuickPrompts(s.Language())
}

// Placeholder returns the input hint for the active language.
func (s *Session) Placeholder() string {
	return s.catalog.Placeholder(s.Language())
}
