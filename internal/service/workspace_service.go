package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"bridge/internal/auth"
	"bridge/internal/chat"
	"bridge/internal/domain"
	"bridge/internal/encoder"
	"bridge/internal/export"
	"bridge/internal/highlight"
	"bridge/internal/language"
	"bridge/internal/lifecycle"
	"bridge/internal/parser"
	"bridge/internal/port"
	"bridge/internal/preference"
)

const backgroundProcessTimeout = 5 * time.Minute

// ProcessInput is the DTO for submitting a document to a workspace.
type ProcessInput struct {
	FileName       string
	ContentType    string
	Body           io.Reader
	TargetLanguage domain.LanguageCode // empty selects the saved preference
	Async          bool
}

// DocumentInfo describes the retained original without its bytes.
type DocumentInfo struct {
	FileName  string           `json:"file_name"`
	MediaType domain.MediaType `json:"media_type"`
	Size      int64            `json:"size"`
}

// WorkspaceView is a snapshot of one workspace for API responses.
type WorkspaceView struct {
	ID             uuid.UUID               `json:"id"`
	Status         domain.LifecycleStatus  `json:"status"`
	Generation     uint64                  `json:"generation"`
	TargetLanguage domain.LanguageCode     `json:"target_language,omitempty"`
	Document       *DocumentInfo           `json:"document,omitempty"`
	Result         *domain.BridgeResult    `json:"result,omitempty"`
	Sections       *domain.SummarySections `json:"sections,omitempty"`
	ErrorMessage   string                  `json:"error_message,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

// CreatedWorkspace is returned once, when a workspace is opened.
type CreatedWorkspace struct {
	Workspace *WorkspaceView `json:"workspace"`
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// HighlightView exposes the marker index and board state of a result.
type HighlightView struct {
	Markers  []highlight.Marker `json:"markers"`
	Warnings []string           `json:"warnings"`
	Done     []bool             `json:"done"`
	Active   *int               `json:"active,omitempty"`
}

// ChatView is the visible state of a workspace's chat session.
type ChatView struct {
	Language    domain.LanguageCode    `json:"language"`
	Messages    []domain.ChatMessage   `json:"messages"`
	Busy        bool                   `json:"busy"`
	Placeholder string                 `json:"placeholder"`
	Prompts     []language.QuickPrompt `json:"prompts"`
}

// ChatReply is the outcome of one chat turn.
type ChatReply struct {
	Reply    string               `json:"reply"`
	Messages []domain.ChatMessage `json:"messages"`
}

// WorkspaceService manages per-session document workspaces.
type WorkspaceService interface {
	Create(ctx context.Context) (*CreatedWorkspace, error)
	Get(ctx context.Context, id uuid.UUID) (*WorkspaceView, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Process(ctx context.Context, id uuid.UUID, input *ProcessInput) (*WorkspaceView, error)
	Reset(ctx context.Context, id uuid.UUID) (*WorkspaceView, error)
	Original(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	Highlights(ctx context.Context, id uuid.UUID) (*HighlightView, error)
	Hover(ctx context.Context, id uuid.UUID, action int) (*highlight.Activation, error)
	Leave(ctx context.Context, id uuid.UUID) error
	ToggleDone(ctx context.Context, id uuid.UUID, action int) (bool, error)
	Translation(ctx context.Context, id uuid.UUID) (string, error)
	Chat(ctx context.Context, id uuid.UUID) (*ChatView, error)
	SendChat(ctx context.Context, id uuid.UUID, message string) (*ChatReply, error)
	SetChatLanguage(ctx context.Context, id uuid.UUID, code domain.LanguageCode) (*ChatView, error)
	Checklist(ctx context.Context, id uuid.UUID) (*export.Checklist, error)
	ReapIdle(now time.Time, ttl time.Duration) int
	Count() int
}

// workspace is one browser session: a lifecycle plus the views built from
// its current result. mu guards the views and lastSeen; the machine has its
// own lock.
type workspace struct {
	id        uuid.UUID
	createdAt time.Time
	machine   *lifecycle.Machine

	mu       sync.Mutex
	lastSeen time.Time
	lang     domain.LanguageCode
	board    *highlight.Board
	session  *chat.Session
}

type workspaceService struct {
	encoder    *encoder.Encoder
	translator port.DocumentTranslator
	chatModel  port.ChatModel
	settings   *preference.Settings
	catalog    *language.Catalog
	tokens     *auth.Tokens
	now        func() time.Time

	mu         sync.RWMutex
	workspaces map[uuid.UUID]*workspace
}

// NewWorkspaceService creates a new WorkspaceService.
func NewWorkspaceService(
	enc *encoder.Encoder,
	translator port.DocumentTranslator,
	chatModel port.ChatModel,
	settings *preference.Settings,
	catalog *language.Catalog,
	tokens *auth.Tokens,
) WorkspaceService {
	return &workspaceService{
		encoder:    enc,
		translator: translator,
		chatModel:  chatModel,
		settings:   settings,
		catalog:    catalog,
		tokens:     tokens,
		now:        time.Now,
		workspaces: make(map[uuid.UUID]*workspace),
	}
}

func (s *workspaceService) Create(_ context.Context) (*CreatedWorkspace, error) {
	now := s.now().UTC()
	ws := &workspace{
		id:        uuid.New(),
		createdAt: now,
		machine:   lifecycle.New(),
		lastSeen:  now,
	}

	token, expiresAt, err := s.tokens.Issue(ws.id)
	if err != nil {
		return nil, fmt.Errorf("workspaceService.Create: %w", err)
	}

	s.mu.Lock()
	s.workspaces[ws.id] = ws
	s.mu.Unlock()

	log.Infof("workspaceService.Create: opened workspace %s", ws.id)
	return &CreatedWorkspace{Workspace: s.view(ws), Token: token, ExpiresAt: expiresAt}, nil
}

func (s *workspaceService) Get(_ context.Context, id uuid.UUID) (*WorkspaceView, error) {
	ws, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return s.view(ws), nil
}

func (s *workspaceService) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	ws, ok := s.workspaces[id]
	delete(s.workspaces, id)
	s.mu.Unlock()
	if !ok {
		return domain.ErrWorkspaceNotFound
	}
	// Abandon any in-flight attempt so its completion is dropped.
	ws.machine.Reset()
	log.Infof("workspaceService.Delete: closed workspace %s", id)
	return nil
}

// Process validates the upload, then runs one translate + summarize attempt.
// Rejected uploads return a ValidationError and leave the lifecycle untouched.
func (s *workspaceService) Process(ctx context.Context, id uuid.UUID, input *ProcessInput) (*WorkspaceView, error) {
	ws, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	if ws.machine.Status() != domain.StatusIdle {
		return nil, domain.ErrNotIdle
	}

	lang := input.TargetLanguage
	if lang == "" {
		lang = s.settings.TargetLanguage()
	}
	if !lang.IsSupported() {
		return nil, domain.ErrInvalidLanguage
	}

	doc, err := s.encoder.FromReader(input.FileName, input.ContentType, input.Body)
	if err != nil {
		return nil, err
	}

	token, err := ws.machine.Begin(doc)
	if err != nil {
		return nil, err
	}
	ws.mu.Lock()
	ws.lang = lang
	ws.mu.Unlock()

	log.Infof("workspaceService.Process: workspace %s attempt %d: %s (%s, %d bytes) -> %s",
		ws.id, token, doc.FileName, doc.MediaType, doc.Size, lang)

	if input.Async {
		go s.processInBackground(ws, token, doc, lang)
		return s.view(ws), nil
	}

	if err := s.runAttempt(ctx, ws, token, doc, lang); err != nil {
		return s.view(ws), err
	}
	return s.view(ws), nil
}

func (s *workspaceService) processInBackground(ws *workspace, token lifecycle.Token, doc domain.Document, lang domain.LanguageCode) {
	ctx, cancel := context.WithTimeout(context.Background(), backgroundProcessTimeout)
	defer cancel()

	if err := s.runAttempt(ctx, ws, token, doc, lang); err != nil {
		log.Warnf("workspaceService.processInBackground: workspace %s attempt %d failed: %v", ws.id, token, err)
	}
}

// runAttempt encodes and sends the document, then applies the outcome if the
// attempt is still current.
func (s *workspaceService) runAttempt(ctx context.Context, ws *workspace, token lifecycle.Token, doc domain.Document, lang domain.LanguageCode) error {
	encoded, err := s.encoder.Encode(doc)
	if err != nil {
		s.fail(ws, token, err)
		return err
	}

	output, err := s.translator.Translate(ctx, port.TranslateInput{
		Document:       encoded,
		TargetLanguage: lang,
		TargetName:     s.catalog.DisplayName(lang),
	})
	if err != nil {
		s.fail(ws, token, err)
		return err
	}

	s.complete(ws, token, output.Result, lang)
	log.Infof("workspaceService.runAttempt: workspace %s attempt %d processed by %s", ws.id, token, output.ModelUsed)
	return nil
}

// complete applies a result and builds the highlight board and chat session
// for it in one step, so readers never see Success without its views.
func (s *workspaceService) complete(ws *workspace, token lifecycle.Token, result *domain.BridgeResult, lang domain.LanguageCode) {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if !ws.machine.Complete(token, result) {
		log.Infof("workspaceService.complete: dropped stale result for workspace %s attempt %d", ws.id, token)
		return
	}
	index := highlight.BuildIndex(result.TranslationHTML, result.Summary.Actions)
	ws.board = highlight.NewBoard(result.TranslationHTML, index)
	ws.session = chat.NewSession(s.chatModel, result, lang, s.catalog)
}

func (s *workspaceService) fail(ws *workspace, token lifecycle.Token, cause error) {
	if !ws.machine.Fail(token, FailureMessage(cause)) {
		log.Infof("workspaceService.fail: dropped stale failure for workspace %s attempt %d", ws.id, token)
		return
	}
	log.Warnf("workspaceService.fail: workspace %s attempt %d: %v", ws.id, token, cause)
}

// FailureMessage is the user-facing text retained in the Error state.
// Contract violations get a generic message; the details are only logged.
func FailureMessage(err error) string {
	var rlErr *parser.RateLimitError
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		return vErr.Message
	case errors.Is(err, domain.ErrMissingCredential):
		return "The translation service is not configured. Please contact the administrator."
	case errors.As(err, &rlErr):
		return fmt.Sprintf("The translation service is busy. Please try again in %d seconds.", int(rlErr.RetryAfter.Seconds()))
	case errors.Is(err, domain.ErrMalformedResponse), errors.Is(err, domain.ErrEmptyResponse):
		return "We could not read the response for this document. Please try again."
	case errors.Is(err, context.DeadlineExceeded):
		return "Processing took too long. Please try again."
	default:
		return "An unexpected error occurred while processing the document."
	}
}

func (s *workspaceService) Reset(_ context.Context, id uuid.UUID) (*WorkspaceView, error) {
	ws, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	ws.mu.Lock()
	ws.machine.Reset()
	ws.board = nil
	ws.session = nil
	ws.lang = ""
	ws.mu.Unlock()

	return s.view(ws), nil
}

func (s *workspaceService) Original(_ context.Context, id uuid.UUID) (*domain.Document, error) {
	ws, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	state := ws.machine.Snapshot()
	if state.Document == nil {
		return nil, domain.ErrNoResult
	}
	return state.Document, nil
}

func (s *workspaceService) Highlights(_ context.Context, id uuid.UUID) (*HighlightView, error) {
	board, err := s.board(id)
	if err != nil {
		return nil, err
	}

	index := board.Index()
	view := &HighlightView{
		Markers:  index.Markers(),
		Warnings: index.Warnings,
		Done:     board.Done(),
	}
	if view.Warnings == nil {
		view.Warnings = []string{}
	}
	if active, ok := board.Active(); ok {
		view.Active = &active
	}
	return view, nil
}

func (s *workspaceService) Hover(_ context.Context, id uuid.UUID, action int) (*highlight.Activation, error) {
	board, err := s.board(id)
	if err != nil {
		return nil, err
	}
	act := board.Hover(action)
	return &act, nil
}

func (s *workspaceService) Leave(_ context.Context, id uuid.UUID) error {
	board, err := s.board(id)
	if err != nil {
		return err
	}
	board.Leave()
	return nil
}

func (s *workspaceService) ToggleDone(_ context.Context, id uuid.UUID, action int) (bool, error) {
	board, err := s.board(id)
	if err != nil {
		return false, err
	}
	return board.ToggleDone(action)
}

func (s *workspaceService) Translation(_ context.Context, id uuid.UUID) (string, error) {
	board, err := s.board(id)
	if err != nil {
		return "", err
	}
	rendered, err := board.Render()
	if err != nil {
		return "", fmt.Errorf("workspaceService.Translation: %w", err)
	}
	return rendered, nil
}

func (s *workspaceService) Chat(_ context.Context, id uuid.UUID) (*ChatView, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}
	return chatView(session), nil
}

func (s *workspaceService) SendChat(ctx context.Context, id uuid.UUID, message string) (*ChatReply, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}
	reply, err := session.Send(ctx, message)
	if err != nil {
		return nil, err
	}
	return &ChatReply{Reply: reply, Messages: session.Messages()}, nil
}

func (s *workspaceService) SetChatLanguage(_ context.Context, id uuid.UUID, code domain.LanguageCode) (*ChatView, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}
	if err := session.SetLanguage(code); err != nil {
		return nil, err
	}
	return chatView(session), nil
}

func (s *workspaceService) Checklist(_ context.Context, id uuid.UUID) (*export.Checklist, error) {
	ws, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	ws.mu.Lock()
	board := ws.board
	ws.mu.Unlock()
	state := ws.machine.Snapshot()
	if board == nil || state.Result == nil {
		return nil, domain.ErrNoResult
	}

	return &export.Checklist{
		FileName: state.Document.FileName,
		Summary:  state.Result.Summary,
		Done:     board.Done(),
	}, nil
}

// ReapIdle removes workspaces not touched since now-ttl and returns how many
// were removed.
func (s *workspaceService) ReapIdle(now time.Time, ttl time.Duration) int {
	cutoff := now.Add(-ttl)

	s.mu.Lock()
	var stale []*workspace
	for id, ws := range s.workspaces {
		ws.mu.Lock()
		idle := ws.lastSeen.Before(cutoff)
		ws.mu.Unlock()
		if idle {
			delete(s.workspaces, id)
			stale = append(stale, ws)
		}
	}
	s.mu.Unlock()

	for _, ws := range stale {
		ws.machine.Reset()
	}
	return len(stale)
}

func (s *workspaceService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.workspaces)
}

func (s *workspaceService) lookup(id uuid.UUID) (*workspace, error) {
	s.mu.RLock()
	ws, ok := s.workspaces[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrWorkspaceNotFound
	}

	ws.mu.Lock()
	ws.lastSeen = s.now().UTC()
	ws.mu.Unlock()
	return ws, nil
}

func (s *workspaceService) board(id uuid.UUID) (*highlight.Board, error) {
	ws, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.board == nil {
		return nil, domain.ErrNoResult
	}
	return ws.board, nil
}

func (s *workspaceService) session(id uuid.UUID) (*chat.Session, error) {
	ws, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.session == nil {
		return nil, domain.ErrNoResult
	}
	return ws.session, nil
}

func (s *workspaceService) view(ws *workspace) *WorkspaceView {
	ws.mu.Lock()
	lang := ws.lang
	ws.mu.Unlock()
	state := ws.machine.Snapshot()

	v := &WorkspaceView{
		ID:             ws.id,
		Status:         state.Status,
		Generation:     uint64(state.Generation),
		TargetLanguage: lang,
		ErrorMessage:   state.ErrorMessage,
		CreatedAt:      ws.createdAt,
		UpdatedAt:      state.UpdatedAt,
	}
	if state.Document != nil {
		v.Document = &DocumentInfo{
			FileName:  state.Document.FileName,
			MediaType: state.Document.MediaType,
			Size:      state.Document.Size,
		}
	}
	if state.Result != nil {
		v.Result = state.Result
		sections := parser.Sections(state.Result.Summary)
		v.Sections = &sections
	}
	return v
}

func chatView(session *chat.Session) *ChatView {
	return &ChatView{
		Language:    session.Language(),
		Messages:    session.Messages(),
		Busy:        session.Busy(),
		Placeholder: session.Placeholder(),
		Prompts:     session.QuickPrompts(),
	}
}
