package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bridge/internal/export"
	"bridge/internal/service"
)

// ExportHandler serves the summary checklist as a spreadsheet download.
type ExportHandler struct {
	workspaceService service.WorkspaceService
	now              func() time.Time
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(workspaceService service.WorkspaceService) *ExportHandler {
	return &ExportHandler{workspaceService: workspaceService, now: time.Now}
}

// Summary handles GET /api/v1/workspaces/:id/summary/export
// @Summary Export the summary checklist
// @Description Download the purpose, actions with their done state, due dates, costs and important info
// @Tags export
// @Produce text/csv,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Workspace ID (UUID)"
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} file "Checklist file"
// @Failure 400 {object} ErrorResponseBody "Unsupported format"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 409 {object} ErrorResponseBody "No processed document"
// @Security BearerAuth
// @Router /workspaces/{id}/summary/export [get]
func (h *ExportHandler) Summary(c *gin.Context) {
	id, ok := parseWorkspaceID(c)
	if !ok {
		return
	}

	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		HandleError(c, err)
		return
	}

	checklist, err := h.workspaceService.Checklist(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	// Buffer so a write failure can still produce an error envelope.
	var buf bytes.Buffer
	if err := export.Write(&buf, format, *checklist); err != nil {
		HandleError(c, fmt.Errorf("exportHandler.Summary: %w", err))
		return
	}

	filename := export.BuildFilename(checklist.FileName, format, h.now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
