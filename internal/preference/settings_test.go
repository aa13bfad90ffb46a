package preference_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bridge/internal/config"
	"bridge/internal/domain"
	"bridge/internal/preference"
	"bridge/internal/repository/memory"
	"bridge/mocks"
)

func TestSettings_DefaultsToEnglish(t *testing.T) {
	s := preference.NewSettings(memory.NewStore())

	require.NoError(t, s.Load(context.Background()))

	assert.Equal(t, domain.LangEnglish, s.TargetLanguage())
}

func TestSettings_LoadsSavedValue(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Set(context.Background(), preference.LanguageKey, "ht"))
	s := preference.NewSettings(store)

	require.NoError(t, s.Load(context.Background()))

	assert.Equal(t, domain.LangHaitian, s.TargetLanguage())
}

func TestSettings_IgnoresUnsupportedSavedValue(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Set(context.Background(), preference.LanguageKey, "klingon"))
	s := preference.NewSettings(store)

	require.NoError(t, s.Load(context.Background()))

	assert.Equal(t, domain.LangEnglish, s.TargetLanguage())
}

func TestSettings_SetWritesThrough(t *testing.T) {
	store := memory.NewStore()
	s := preference.NewSettings(store)
	ctx := context.Background()

	require.NoError(t, s.SetTargetLanguage(ctx, domain.LangKorean))

	assert.Equal(t, domain.LangKorean, s.TargetLanguage())
	saved, err := store.Get(ctx, preference.LanguageKey)
	require.NoError(t, err)
	assert.Equal(t, "ko", saved)

	reloaded := preference.NewSettings(store)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, domain.LangKorean, reloaded.TargetLanguage())
}

func TestSettings_SetRejectsUnsupported(t *testing.T) {
	store := new(mocks.MockPreferenceStore)
	s := preference.NewSettings(store)

	err := s.SetTargetLanguage(context.Background(), "xx")

	assert.ErrorIs(t, err, domain.ErrInvalidLanguage)
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestSettings_SetFailureKeepsCachedValue(t *testing.T) {
	store := new(mocks.MockPreferenceStore)
	store.On("Set", mock.Anything, preference.LanguageKey, "fr").Return(errors.New("disk full"))
	s := preference.NewSettings(store)

	err := s.SetTargetLanguage(context.Background(), domain.LangFrench)

	assert.Error(t, err)
	assert.Equal(t, domain.LangEnglish, s.TargetLanguage())
}

func TestSettings_LoadStoreFailure(t *testing.T) {
	store := new(mocks.MockPreferenceStore)
	store.On("Get", mock.Anything, preference.LanguageKey).Return("", errors.New("connection refused"))
	s := preference.NewSettings(store)

	err := s.Load(context.Background())

	assert.ErrorContains(t, err, "connection refused")
	assert.Equal(t, domain.LangEnglish, s.TargetLanguage())
}

func TestOpenStore(t *testing.T) {
	store, closeFn, err := preference.OpenStore(&config.PreferenceConfig{Driver: "memory"})
	require.NoError(t, err)
	assert.NoError(t, store.Ping(context.Background()))
	assert.NoError(t, closeFn())

	store, closeFn, err = preference.OpenStore(&config.PreferenceConfig{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "bridge.db"),
	})
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), preference.LanguageKey, "pt"))
	assert.NoError(t, closeFn())

	_, _, err = preference.OpenStore(&config.PreferenceConfig{Driver: "etcd"})
	assert.ErrorContains(t, err, "unknown preference driver")
}
