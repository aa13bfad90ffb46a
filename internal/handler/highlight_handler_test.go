package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bridge/internal/domain"
	"bridge/internal/handler"
	"bridge/internal/highlight"
	"bridge/internal/service"
	"bridge/mocks"
)

func withIndex(c *gin.Context, id uuid.UUID, index string) {
	c.Params = gin.Params{{Key: "id", Value: id.String()}, {Key: "index", Value: index}}
}

func TestHighlightHandler_List(t *testing.T) {
	svc := new(mocks.MockWorkspaceService)
	h := handler.NewHighlightHandler(svc)

	id := uuid.New()
	svc.On("Highlights", mock.Anything, id).Return(&service.HighlightView{
		Markers:  []highlight.Marker{{ID: "action-ref-0", Action: 0, Text: "Signature"}},
		Warnings: []string{"marker action-ref-4 has no matching action"},
		Done:     []bool{false, true},
	}, nil)

	c, w := newWorkspaceContext(http.MethodGet, "/api/v1/workspaces/"+id.String()+"/highlights", id)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	markers := data["markers"].([]interface{})
	assert.Len(t, markers, 1)
	assert.Len(t, data["warnings"].([]interface{}), 1)
	assert.Equal(t, []interface{}{false, true}, data["done"])
}

func TestHighlightHandler_Hover(t *testing.T) {
	svc := new(mocks.MockWorkspaceService)
	h := handler.NewHighlightHandler(svc)

	id := uuid.New()
	svc.On("Hover", mock.Anything, id, 0).Return(&highlight.Activation{Action: 0, Changed: true, ScrollTo: "action-ref-0"}, nil)

	c, w := newWorkspaceContext(http.MethodPost, "/", id)
	withIndex(c, id, "0")
	h.Hover(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, "action-ref-0", data["scroll_to"])
	assert.Equal(t, true, data["changed"])
}

func TestHighlightHandler_Hover_InvalidIndex(t *testing.T) {
	svc := new(mocks.MockWorkspaceService)
	h := handler.NewHighlightHandler(svc)

	id := uuid.New()
	for _, index := range []string{"abc", "-1"} {
		c, w := newWorkspaceContext(http.MethodPost, "/", id)
		withIndex(c, id, index)
		h.Hover(c)

		assert.Equal(t, http.StatusBadRequest, w.Code, index)
		assert.Equal(t, "INVALID_INDEX", decodeResponse(t, w).Error.Code)
	}
	svc.AssertNotCalled(t, "Hover", mock.Anything, mock.Anything, mock.Anything)
}

func TestHighlightHandler_Leave_NoResult(t *testing.T) {
	svc := new(mocks.MockWorkspaceService)
	h := handler.NewHighlightHandler(svc)

	id := uuid.New()
	svc.On("Leave", mock.Anything, id).Return(domain.ErrNoResult)

	c, w := newWorkspaceContext(http.MethodPost, "/", id)
	h.Leave(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHighlightHandler_Toggle(t *testing.T) {
	svc := new(mocks.MockWorkspaceService)
	h := handler.NewHighlightHandler(svc)

	id := uuid.New()
	svc.On("ToggleDone", mock.Anything, id, 1).Return(true, nil)
	svc.On("ToggleDone", mock.Anything, id, 9).Return(false, domain.ErrActionOutOfRange)

	c, w := newWorkspaceContext(http.MethodPost, "/", id)
	withIndex(c, id, "1")
	h.Toggle(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, float64(1), data["index"])
	assert.Equal(t, true, data["done"])

	c, w = newWorkspaceContext(http.MethodPost, "/", id)
	withIndex(c, id, "9")
	h.Toggle(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ACTION_OUT_OF_RANGE", decodeResponse(t, w).Error.Code)
}

func TestHighlightHandler_Translation(t *testing.T) {
	svc := new(mocks.MockWorkspaceService)
	h := handler.NewHighlightHandler(svc)

	id := uuid.New()
	markup := `<p><span class="action-highlight active" id="action-ref-0">Firma</span></p>`
	svc.On("Translation", mock.Anything, id).Return(markup, nil)

	c, w := newWorkspaceContext(http.MethodGet, "/", id)
	h.Translation(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, markup, decodeResponse(t, w).Data.(map[string]interface{})["html"])
}
