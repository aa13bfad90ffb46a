package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bridge/internal/domain"
	"bridge/internal/service"
)

// WorkspaceHandler handles workspace lifecycle and document upload endpoints.
type WorkspaceHandler struct {
	workspaceService service.WorkspaceService
}

// NewWorkspaceHandler creates a new WorkspaceHandler.
func NewWorkspaceHandler(workspaceService service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

// Create handles POST /api/v1/workspaces
// @Summary Open a workspace
// @Description Open an idle workspace for one browser session. The returned token authorizes every other workspace route.
// @Tags workspaces
// @Produce json
// @Success 201 {object} Response{data=service.CreatedWorkspace} "Workspace created"
// @Failure 500 {object} ErrorResponseBody "Internal error"
// @Router /workspaces [post]
func (h *WorkspaceHandler) Create(c *gin.Context) {
	created, err := h.workspaceService.Create(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, created)
}

// Get handles GET /api/v1/workspaces/:id
// @Summary Get workspace state
// @Description Get the lifecycle status, result and error message of a workspace
// @Tags workspaces
// @Produce json
// @Param id path string true "Workspace ID (UUID)"
// @Success 200 {object} Response{data=service.WorkspaceView} "Workspace snapshot"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Workspace not found"
// @Security BearerAuth
// @Router /workspaces/{id} [get]
func (h *WorkspaceHandler) Get(c *gin.Context) {
	id, ok := parseWorkspaceID(c)
	if !ok {
		return
	}

	view, err := h.workspaceService.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// Delete handles DELETE /api/v1/workspaces/:id
// @Summary Close a workspace
// @Description Discard the workspace together with its document, result and chat
// @Tags workspaces
// @Produce json
// @Param id path string true "Workspace ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Workspace deleted"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Workspace not found"
// @Security BearerAuth
// @Router /workspaces/{id} [delete]
func (h *WorkspaceHandler) Delete(c *gin.Context) {
	id, ok := parseWorkspaceID(c)
	if !ok {
		return
	}

	if err := h.workspaceService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, MessageResponse{Message: "workspace deleted"})
}

// Process handles POST /api/v1/workspaces/:id/document
// @Summary Translate and summarize a document
// @Description Upload a PDF or image (max 10MB) and run one translate + summarize attempt.
// @Description With async=true the attempt runs in the background and the workspace should be polled.
// @Tags workspaces
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Workspace ID (UUID)"
// @Param file formData file true "Document (PDF, JPEG, PNG, WEBP or HEIC)"
// @Param target_language formData string false "Target language code; defaults to the saved preference"
// @Param async query bool false "Process in the background" default(false)
// @Success 200 {object} Response{data=service.WorkspaceView} "Document processed"
// @Success 202 {object} Response{data=service.WorkspaceView} "Processing started"
// @Failure 400 {object} ErrorResponseBody "Missing file, unsupported type, too large or bad language"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 409 {object} ErrorResponseBody "Workspace is not idle"
// @Failure 429 {object} ErrorResponseBody "Translation service rate limited"
// @Failure 502 {object} ErrorResponseBody "Processing failed"
// @Security BearerAuth
// @Router /workspaces/{id}/document [post]
func (h *WorkspaceHandler) Process(c *gin.Context) {
	id, ok := parseWorkspaceID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	async, _ := strconv.ParseBool(c.DefaultQuery("async", "false"))
	input := &service.ProcessInput{
		FileName:       header.Filename,
		ContentType:    header.Header.Get("Content-Type"),
		Body:           file,
		TargetLanguage: domain.LanguageCode(c.PostForm("target_language")),
		Async:          async,
	}

	view, err := h.workspaceService.Process(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	if async {
		RespondAccepted(c, view)
		return
	}
	RespondOK(c, view)
}

// Reset handles POST /api/v1/workspaces/:id/reset
// @Summary Reset a workspace
// @Description Return to idle, discarding the document, result and chat. An in-flight attempt is abandoned.
// @Tags workspaces
// @Produce json
// @Param id path string true "Workspace ID (UUID)"
// @Success 200 {object} Response{data=service.WorkspaceView} "Workspace reset"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Workspace not found"
// @Security BearerAuth
// @Router /workspaces/{id}/reset [post]
func (h *WorkspaceHandler) Reset(c *gin.Context) {
	id, ok := parseWorkspaceID(c)
	if !ok {
		return
	}

	view, err := h.workspaceService.Reset(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// Original handles GET /api/v1/workspaces/:id/document/original
// @Summary Download the original document
// @Description Stream the uploaded document as it was received
// @Tags workspaces
// @Produce application/pdf,image/jpeg,image/png,image/webp,image/heic
// @Param id path string true "Workspace ID (UUID)"
// @Success 200 {file} file "Original document"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Workspace not found"
// @Failure 409 {object} ErrorResponseBody "No document in the workspace"
// @Security BearerAuth
// @Router /workspaces/{id}/document/original [get]
func (h *WorkspaceHandler) Original(c *gin.Context) {
	id, ok := parseWorkspaceID(c)
	if !ok {
		return
	}

	doc, err := h.workspaceService.Original(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", doc.FileName))
	c.Data(http.StatusOK, string(doc.MediaType), doc.Bytes)
}
