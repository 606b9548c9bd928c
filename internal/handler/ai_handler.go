package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduboost/course-portal-api/internal/dto"
	"github.com/eduboost/course-portal-api/internal/service"
	appErrors "github.com/eduboost/course-portal-api/pkg/errors"
	"github.com/eduboost/course-portal-api/pkg/response"
)

// AIHandler wires the AI proxy endpoints to the AI service.
type AIHandler struct {
	service *service.AIService
	metrics *service.MetricsService
}

// NewAIHandler creates a new handler.
func NewAIHandler(svc *service.AIService, metrics *service.MetricsService) *AIHandler {
	return &AIHandler{service: svc, metrics: metrics}
}

// Summarize godoc
// @Summary Summarize course content
// @Description Produce a bullet-point summary of the given content
// @Tags AI
// @Accept json
// @Produce json
// @Param payload body dto.SummarizeRequest true "Content payload"
// @Success 200 {object} dto.SummarizeResponse
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 413 {object} response.ErrorEnvelope
// @Failure 429 {object} response.ErrorEnvelope
// @Failure 502 {object} response.ErrorEnvelope
// @Router /ai/summarize [post]
func (h *AIHandler) Summarize(c *gin.Context) {
	var req dto.SummarizeRequest
	if err := bindJSON(c, &req, "invalid summarize payload"); err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.service.Summarize(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// Flashcards godoc
// @Summary Generate flashcards
// @Description Generate a question/answer deck from the given content
// @Tags AI
// @Accept json
// @Produce json
// @Param payload body dto.FlashcardsRequest true "Content payload"
// @Success 200 {object} dto.FlashcardsResponse
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 413 {object} response.ErrorEnvelope
// @Failure 429 {object} response.ErrorEnvelope
// @Failure 502 {object} response.ErrorEnvelope
// @Router /ai/flashcards [post]
func (h *AIHandler) Flashcards(c *gin.Context) {
	var req dto.FlashcardsRequest
	if err := bindJSON(c, &req, "invalid flashcards payload"); err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.service.Flashcards(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// Podcast godoc
// @Summary Synthesize podcast audio
// @Description Convert the given text to mp3 audio returned as a data URL
// @Tags AI
// @Accept json
// @Produce json
// @Param payload body dto.PodcastRequest true "Text payload"
// @Success 200 {object} dto.PodcastResponse
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 413 {object} response.ErrorEnvelope
// @Failure 429 {object} response.ErrorEnvelope
// @Failure 502 {object} response.ErrorEnvelope
// @Router /ai/podcast [post]
func (h *AIHandler) Podcast(c *gin.Context) {
	var req dto.PodcastRequest
	if err := bindJSON(c, &req, "invalid podcast payload"); err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.service.Podcast(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

func (h *AIHandler) fail(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	if h.metrics != nil && appErr.Status >= http.StatusInternalServerError {
		h.metrics.RecordUpstreamError(appErr.Code)
	}
	response.Error(c, err)
}
