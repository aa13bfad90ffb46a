// Package preference holds the persisted default target language.
package preference

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"bridge/internal/domain"
	"bridge/internal/port"
)

// LanguageKey is the application-scoped key of the saved language code.
const LanguageKey = "bridge_default_lang"

// Settings is loaded once at startup and written through on every change.
// It is passed explicitly to whatever needs the preference.
type Settings struct {
	store port.PreferenceStore

	mu   sync.RWMutex
	lang domain.LanguageCode
}

// NewSettings creates settings backed by store, defaulting to English until Load.
func NewSettings(store port.PreferenceStore) *Settings {
	return &Settings{store: store, lang: domain.DefaultLanguage}
}

// Load reads the saved language. An absent or unsupported value leaves the
// default in place; only store failures are returned.
func (s *Settings) Load(ctx context.Context) error {
	raw, err := s.store.Get(ctx, LanguageKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("preference.Load: %w", err)
	}

	code, err := domain.ParseLanguage(raw)
	if err != nil {
		log.Warnf("preference.Load: ignoring saved language %q", raw)
		return nil
	}

	s.mu.Lock()
	s.lang = code
	s.mu.Unlock()
	return nil
}

// TargetLanguage returns the current default target language.
func (s *Settings) TargetLanguage() domain.LanguageCode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lang
}

// SetTargetLanguage validates code, persists it and updates the cached value.
// The cached value changes only after a successful write.
func (s *Settings) SetTargetLanguage(ctx context.Context, code domain.LanguageCode) error {
	if !code.IsSupported() {
		return domain.ErrInvalidLanguage
	}
	if err := s.store.Set(ctx, LanguageKey, string(code)); err != nil {
		return fmt.Errorf("preference.SetTargetLanguage: %w", err)
	}

	s.mu.Lock()
	s.lang = code
	s.mu.Unlock()
	return nil
}

// Ping checks the backing store.
func (s *Settings) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
