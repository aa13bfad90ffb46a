package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bridge/internal/auth"
	"bridge/internal/config"
	"bridge/internal/domain"
	"bridge/internal/encoder"
	"bridge/internal/language"
	"bridge/internal/port"
	"bridge/internal/preference"
	"bridge/internal/repository/memory"
	"bridge/internal/service"
	"bridge/mocks"
)

type testEnv struct {
	translator *mocks.MockDocumentTranslator
	chatModel  *mocks.MockChatModel
	settings   *preference.Settings
	workspaces service.WorkspaceService
}

func setupTestDeps(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		translator: new(mocks.MockDocumentTranslator),
		chatModel:  new(mocks.MockChatModel),
		settings:   preference.NewSettings(memory.NewStore()),
	}
	catalog := language.Default()
	tokens := auth.NewTokens(config.AuthConfig{Secret: "cli", TokenExpiry: time.Hour, Issuer: "bridge"})
	env.workspaces = service.NewWorkspaceService(encoder.New(0), env.translator, env.chatModel, env.settings, catalog, tokens)

	old := deps
	Configure(&Deps{Workspaces: env.workspaces, Settings: env.settings, Catalog: catalog})
	t.Cleanup(func() {
		deps = old
		translateLang, translateJSON, chatLang = "", false, ""
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	})
	return env
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func writePNG(t *testing.T) string {
	t.Helper()
	data := make([]byte, 512)
	copy(data, []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'})
	path := filepath.Join(t.TempDir(), "notice.png")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func sampleResult() *domain.BridgeResult {
	return &domain.BridgeResult{
		DetectedLanguage: "en",
		TargetLanguage:   "es",
		TranslationHTML:  `<h1>Aviso</h1><p>Firme en la <span class="action-highlight" id="action-ref-0">Firma</span>.</p>`,
		Summary: domain.Summary{
			Purpose:       "Aviso de la escuela.",
			Actions:       []string{"Firme abajo"},
			DueDates:      []string{"No explicit deadlines mentioned."},
			Costs:         []string{"$25 fee"},
			ImportantInfo: []string{"Traiga su identificación"},
		},
	}
}

func TestTranslateCmd_RequiresExactlyOneArg(t *testing.T) {
	setupTestDeps(t)

	_, err := execute(t, "", "translate")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestTranslateCmd_PrintsSummary(t *testing.T) {
	env := setupTestDeps(t)
	env.translator.On("Translate", mock.Anything, mock.MatchedBy(func(in port.TranslateInput) bool {
		return in.TargetLanguage == domain.LangSpanish
	})).Return(&port.TranslateOutput{Result: sampleResult()}, nil)

	out, err := execute(t, "", "translate", writePNG(t), "--lang", "es")

	require.NoError(t, err)
	assert.Contains(t, out, "Aviso de la escuela.")
	assert.Contains(t, out, "1. Firme abajo")
	assert.Contains(t, out, "DUE DATES\n  None")
	assert.Contains(t, out, "- $25 fee")
	assert.Contains(t, out, "Firme en la Firma.")
	assert.NotContains(t, out, "<span")
	assert.Zero(t, env.workspaces.Count(), "workspace is discarded afterwards")
}

func TestTranslateCmd_UsesSavedLanguage(t *testing.T) {
	env := setupTestDeps(t)
	require.NoError(t, env.settings.SetTargetLanguage(context.Background(), domain.LangVietnamese))
	env.translator.On("Translate", mock.Anything, mock.MatchedBy(func(in port.TranslateInput) bool {
		return in.TargetLanguage == domain.LangVietnamese
	})).Return(&port.TranslateOutput{Result: sampleResult()}, nil)

	out, err := execute(t, "", "translate", writePNG(t), "--json")

	require.NoError(t, err)
	assert.Contains(t, out, `"translation_html"`)
	env.translator.AssertExpectations(t)
}

func TestTranslateCmd_ProcessingFailure(t *testing.T) {
	env := setupTestDeps(t)
	env.translator.On("Translate", mock.Anything, mock.Anything).
		Return(nil, &domain.MalformedResponseError{Field: "summary.costs"})

	_, err := execute(t, "", "translate", writePNG(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "processing failed")
	assert.NotContains(t, err.Error(), "summary.costs")
	assert.Zero(t, env.workspaces.Count())
}

func TestTranslateCmd_MissingFile(t *testing.T) {
	setupTestDeps(t)

	_, err := execute(t, "", "translate", filepath.Join(t.TempDir(), "missing.pdf"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open")
}

func TestChatCmd_Conversation(t *testing.T) {
	env := setupTestDeps(t)
	env.translator.On("Translate", mock.Anything, mock.Anything).Return(&port.TranslateOutput{Result: sampleResult()}, nil)
	env.chatModel.On("Chat", mock.Anything, mock.Anything).Return("El 3 de marzo.", nil).Once()

	out, err := execute(t, "¿Cuándo vence?\n/lang fr\n/quit\n", "chat", writePNG(t), "--lang", "es")

	require.NoError(t, err)
	assert.Contains(t, out, "bridge> El 3 de marzo.")
	assert.Contains(t, out, "bridge> (French")
	env.chatModel.AssertExpectations(t)
}

func TestLangCmd_SetAndGet(t *testing.T) {
	setupTestDeps(t)

	out, err := execute(t, "", "lang", "set", "ko")
	require.NoError(t, err)
	assert.Contains(t, out, "Korean")

	out, err = execute(t, "", "lang", "get")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "ko\t"))
}

func TestLangCmd_SetInvalid(t *testing.T) {
	env := setupTestDeps(t)

	_, err := execute(t, "", "lang", "set", "xx")

	assert.ErrorIs(t, err, domain.ErrInvalidLanguage)
	assert.Equal(t, domain.LangEnglish, env.settings.TargetLanguage())
}

func TestLangCmd_List(t *testing.T) {
	setupTestDeps(t)

	out, err := execute(t, "", "lang", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "* en")
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 12)
}
