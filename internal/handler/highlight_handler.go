package handler

import (
	"github.com/gin-gonic/gin"

	"bridge/internal/service"
)

// HighlightHandler handles the cross-reference endpoints between summary
// actions and highlight markers in the translation.
type HighlightHandler struct {
	workspaceService service.WorkspaceService
}

// NewHighlightHandler creates a new HighlightHandler.
func NewHighlightHandler(workspaceService service.WorkspaceService) *HighlightHandler {
	return &HighlightHandler{workspaceService: workspaceService}
}

// List handles GET /api/v1/workspaces/:id/highlights
// @Summary Get the highlight index
// @Description Markers found in the translation, warnings for dangling or malformed markers, and the done state of every action
// @Tags highlights
// @Produce json
// @Param id path string true "Workspace ID (UUID)"
// @Success 200 {object} Response{data=service.HighlightView} "Highlight index"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Workspace not found"
// @Failure 409 {object} ErrorResponseBody "No processed document"
// @Security BearerAuth
// @Router /workspaces/{id}/highlights [get]
func (h *HighlightHandler) List(c *gin.Context) {
	id, ok := parseWorkspaceID(c)
	if !ok {
		return
	}

	view, err := h.workspaceService.Highlights(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// Hover handles POST /api/v1/workspaces/:id/actions/:index/hover
// @Summary Activate an action's marker
// @Description Clears the active marker and activates the one linked to the action. An action without a marker changes nothing.
// @Tags highlights
// @Produce json
// @Param id path string true "Workspace ID (UUID)"
// @Param index path int true "Zero-based action index"
// @Success 200 {object} Response{data=highlight.Activation} "Activation result"
// @Failure 400 {object} ErrorResponseBody "Invalid index"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 409 {object} ErrorResponseBody "No processed document"
// @Security BearerAuth
// @Router /workspaces/{id}/actions/{index}/hover [post]
func (h *HighlightHandler) Hover(c *gin.Context) {
	id, ok := parseWorkspaceID(c)
	if !ok {
		return
	}
	index, ok := parseActionIndex(c)
	if !ok {
		return
	}

	activation, err := h.workspaceService.Hover(c.Request.Context(), id, index)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, activation)
}

// Leave handles POST /api/v1/workspaces/:id/actions/leave
// @Summary Clear the active marker
// @Tags highlights
// @Produce json
// @Param id path string true "Workspace ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Markers cleared"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 409 {object} ErrorResponseBody "No processed document"
// @Security BearerAuth
// @Router /workspaces/{id}/actions/leave [post]
func (h *HighlightHandler) Leave(c *gin.Context) {
	id, ok := parseWorkspaceID(c)
	if !ok {
		return
	}

	if err := h.workspaceService.Leave(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, MessageResponse{Message: "markers cleared"})
}

// Toggle handles POST /api/v1/workspaces/:id/actions/:index/toggle
// @Summary Toggle an action's done state
// @Tags highlights
// @Produce json
// @Param id path string true "Workspace ID (UUID)"
// @Param index path int true "Zero-based action index"
// @Success 200 {object} Response{data=ToggleResponse} "New done state"
// @Failure 400 {object} ErrorResponseBody "Index out of range"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 409 {object} ErrorResponseBody "No processed document"
// @Security BearerAuth
// @Router /workspaces/{id}/actions/{index}/toggle [post]
func (h *HighlightHandler) Toggle(c *gin.Context) {
	id, ok := parseWorkspaceID(c)
	if !ok {
		return
	}
	index, ok := parseActionIndex(c)
	if !ok {
		return
	}

	done, err := h.workspaceService.ToggleDone(c.Request.Context(), id, index)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, ToggleResponse{Index: index, Done: done})
}

// Translation handles GET /api/v1/workspaces/:id/translation
// @Summary Get the rendered translation
// @Description The translated markup with the active marker carrying the "active" class
// @Tags highlights
// @Produce json
// @Param id path string true "Workspace ID (UUID)"
// @Success 200 {object} Response{data=TranslationResponse} "Rendered translation"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 409 {object} ErrorResponseBody "No processed document"
// @Security BearerAuth
// @Router /workspaces/{id}/translation [get]
func (h *HighlightHandler) Translation(c *gin.Context) {
	id, ok := parseWorkspaceID(c)
	if !ok {
		return
	}

	markup, err := h.workspaceService.Translation(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, TranslationResponse{HTML: markup})
}
