package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeffholland/drillbuilder/internal/services"
	"github.com/jeffholland/drillbuilder/internal/utils"
)

type LanguageHandler struct {
	BaseHandler
	languageService services.LanguageService
}

func NewLanguageHandler(languageService services.LanguageService, logger utils.Logger) *LanguageHandler {
	return &LanguageHandler{
		BaseHandler:     NewBaseHandler(logger),
		languageService: languageService,
	}
}

// ListLanguages returns the language catalog.
func (h *LanguageHandler) ListLanguages(c *gin.Context) {
	languages, err := h.languageService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, languages)
}

// GetLanguageByCode looks up one language by its ISO code.
func (h *LanguageHandler) GetLanguageByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid code",
			Details: "language code cannot be empty",
		})
		return
	}

	language, err := h.languageService.GetByCode(c.Request.Context(), code)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, language)
}
