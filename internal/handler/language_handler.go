package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bridge/internal/language"
	"bridge/internal/preference"
)

// LanguageHandler serves the language catalog and the saved target language.
type LanguageHandler struct {
	catalog  *language.Catalog
	settings *preference.Settings
}

// NewLanguageHandler creates a new LanguageHandler.
func NewLanguageHandler(catalog *language.Catalog, settings *preference.Settings) *LanguageHandler {
	return &LanguageHandler{catalog: catalog, settings: settings}
}

// List handles GET /api/v1/languages
// @Summary List supported languages
// @Tags languages
// @Produce json
// @Success 200 {object} Response{data=[]language.Option} "Supported languages"
// @Router /languages [get]
func (h *LanguageHandler) List(c *gin.Context) {
	RespondOK(c, h.catalog.Options())
}

// GetPreference handles GET /api/v1/preferences/language
// @Summary Get the default target language
// @Tags languages
// @Produce json
// @Success 200 {object} Response{data=LanguageRequest} "Saved target language"
// @Router /preferences/language [get]
func (h *LanguageHandler) GetPreference(c *gin.Context) {
	RespondOK(c, LanguageRequest{Language: h.settings.TargetLanguage()})
}

// SetPreference handles PUT /api/v1/preferences/language
// @Summary Set the default target language
// @Description Saved immediately; used when an upload does not name a target language
// @Tags languages
// @Accept json
// @Produce json
// @Param request body LanguageRequest true "Language code"
// @Success 200 {object} Response{data=LanguageRequest} "Saved target language"
// @Failure 400 {object} ErrorResponseBody "Unsupported language"
// @Failure 500 {object} ErrorResponseBody "Preference store unavailable"
// @Router /preferences/language [put]
func (h *LanguageHandler) SetPreference(c *gin.Context) {
	var req LanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	if err := h.settings.SetTargetLanguage(c.Request.Context(), req.Language); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, LanguageRequest{Language: h.settings.TargetLanguage()})
}
