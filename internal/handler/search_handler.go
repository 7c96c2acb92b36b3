package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daktarbari/doctor-directory-api/internal/models"
	appErrors "github.com/daktarbari/doctor-directory-api/pkg/errors"
	"github.com/daktarbari/doctor-directory-api/pkg/response"
)

type searchService interface {
	Search(ctx context.Context, prompt, fallbackLocation string) (*models.SearchResult, error)
}

// AISearchRequest is the free-text search payload.
type AISearchRequest struct {
	Prompt           string `json:"prompt" binding:"required"`
	FallbackLocation string `json:"fallbackLocation"`
}

// SearchHandler exposes the AI-assisted doctor search endpoint.
type SearchHandler struct {
	service searchService
}

// NewSearchHandler builds a new handler.
func NewSearchHandler(service searchService) *SearchHandler {
	return &SearchHandler{service: service}
}

// Search godoc
// @Summary Search doctors from a free-text prompt
// @Description Interprets a natural language prompt (Bangla or English) and returns matching doctors plus the derived criteria.
// @Tags Search
// @Accept json
// @Produce json
// @Param payload body AISearchRequest true "Search prompt"
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /search/ai [post]
func (h *SearchHandler) Search(c *gin.Context) {
	var req AISearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "prompt is required"))
		return
	}
	result, err := h.service.Search(c.Request.Context(), req.Prompt, req.FallbackLocation)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Search(c, result.Data, result.Meta.Count, result.Criteria)
}
