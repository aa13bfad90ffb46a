package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"bridge/internal/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  16 * 1024,
	WriteBufferSize: 16 * 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// TurnLimiter charges one chat turn to a workspace's bucket.
type TurnLimiter interface {
	Allow(key string) (time.Duration, bool)
}

// ChatHandler handles follow-up questions about a processed document.
type ChatHandler struct {
	workspaceService service.WorkspaceService
	limiter          TurnLimiter
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(workspaceService service.WorkspaceService) *ChatHandler {
	return &ChatHandler{workspaceService: workspaceService}
}

// WithTurnLimiter makes every websocket frame draw from the same bucket as
// POST /chat, keyed by workspace id.
func (h *ChatHandler) WithTurnLimiter(l TurnLimiter) *ChatHandler {
	h.limiter = l
	return h
}

// Get handles GET /api/v1/workspaces/:id/chat
// @Summary Get the chat transcript
// @Tags chat
// @Produce json
// @Param id path string true "Workspace ID (UUID)"
// @Success 200 {object} Response{data=service.ChatView} "Chat state"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Workspace not found"
// @Failure 409 {object} ErrorResponseBody "No processed document"
// @Security BearerAuth
// @Router /workspaces/{id}/chat [get]
func (h *ChatHandler) Get(c *gin.Context) {
	id, ok := parseWorkspaceID(c)
	if !ok {
		return
	}

	view, err := h.workspaceService.Chat(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// Send handles POST /api/v1/workspaces/:id/chat
// @Summary Ask a question about the document
// @Description Runs one chat turn. A failed model call is answered with an apology in the transcript, not an error.
// @Tags chat
// @Accept json
// @Produce json
// @Param id path string true "Workspace ID (UUID)"
// @Param request body ChatMessageRequest true "Question"
// @Success 200 {object} Response{data=service.ChatReply} "Reply and updated transcript"
// @Failure 400 {object} ErrorResponseBody "Empty message"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 409 {object} ErrorResponseBody "A turn is already in progress or no processed document"
// @Security BearerAuth
// @Router /workspaces/{id}/chat [post]
func (h *ChatHandler) Send(c *gin.Context) {
	id, ok := parseWorkspaceID(c)
	if !ok {
		return
	}

	var req ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	reply, err := h.workspaceService.SendChat(c.Request.Context(), id, req.Message)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, reply)
}

// SetLanguage handles PUT /api/v1/workspaces/:id/chat/language
// @Summary Change the chat language
// @Description Later replies use the new language; the transcript is kept
// @Tags chat
// @Accept json
// @Produce json
// @Param id path string true "Workspace ID (UUID)"
// @Param request body LanguageRequest true "Language code"
// @Success 200 {object} Response{data=service.ChatView} "Chat state"
// @Failure 400 {object} ErrorResponseBody "Unsupported language"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 409 {object} ErrorResponseBody "No processed document"
// @Security BearerAuth
// @Router /workspaces/{id}/chat/language [put]
func (h *ChatHandler) SetLanguage(c *gin.Context) {
	id, ok := parseWorkspaceID(c)
	if !ok {
		return
	}

	var req LanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	view, err := h.workspaceService.SetChatLanguage(c.Request.Context(), id, req.Language)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// Prompts handles GET /api/v1/workspaces/:id/chat/prompts
// @Summary Get quick prompts
// @Description Canned questions in the current chat language
// @Tags chat
// @Produce json
// @Param id path string true "Workspace ID (UUID)"
// @Success 200 {object} Response{data=[]language.QuickPrompt} "Quick prompts"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 409 {object} ErrorResponseBody "No processed document"
// @Security BearerAuth
// @Router /workspaces/{id}/chat/prompts [get]
func (h *ChatHandler) Prompts(c *gin.Context) {
	id, ok := parseWorkspaceID(c)
	if !ok {
		return
	}

	view, err := h.workspaceService.Chat(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view.Prompts)
}

// Stream handles GET /api/v1/workspaces/:id/chat/ws
// @Summary Chat over a websocket
// @Description Each text frame {"message": "..."} runs one turn and is answered with a ChatFrame. Turn errors are reported in the frame and keep the connection open.
// @Tags chat
// @Param id path string true "Workspace ID (UUID)"
// @Param token query string false "Workspace token, for clients that cannot set headers"
// @Success 101 {object} ChatFrame "Switching protocols"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 409 {object} ErrorResponseBody "No processed document"
// @Security BearerAuth
// @Router /workspaces/{id}/chat/ws [get]
func (h *ChatHandler) Stream(c *gin.Context) {
	id, ok := parseWorkspaceID(c)
	if !ok {
		return
	}
	if _, err := h.workspaceService.Chat(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warnf("chatHandler.Stream: websocket upgrade failed: %v", err)
		return
	}
	defer func() { _ = ws.Close() }()

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debugf("chatHandler.Stream: workspace %s read ended: %v", id, err)
			}
			return
		}

		frame := h.turn(c.Request.Context(), id, raw)
		if err := ws.WriteJSON(frame); err != nil {
			log.Debugf("chatHandler.Stream: workspace %s write failed: %v", id, err)
			return
		}
	}
}

func (h *ChatHandler) turn(ctx context.Context, id uuid.UUID, raw []byte) ChatFrame {
	if h.limiter != nil {
		if wait, ok := h.limiter.Allow(id.String()); !ok {
			return ChatFrame{Type: FrameError, Error: &APIError{
				Code:    "RATE_LIMITED",
				Message: fmt.Sprintf("too many messages; retry in %ds", int(math.Ceil(wait.Seconds()))),
			}}
		}
	}

	var req ChatMessageRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return ChatFrame{Type: FrameError, Error: &APIError{Code: "INVALID_REQUEST", Message: `frame must be {"message": "..."}`}}
	}

	reply, err := h.workspaceService.SendChat(ctx, id, req.Message)
	if err != nil {
		status, code, msg := MapDomainError(err)
		if status >= 500 {
			log.Errorf("chatHandler.turn: workspace %s: %v", id, err)
		}
		return ChatFrame{Type: FrameError, Error: &APIError{Code: code, Message: msg}}
	}
	return ChatFrame{Type: FrameReply, Reply: reply.Reply, Messages: reply.Messages}
}
