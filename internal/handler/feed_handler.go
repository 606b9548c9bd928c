package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduboost/course-portal-api/internal/service"
	"github.com/eduboost/course-portal-api/pkg/response"
)

// FeedHandler wires the RSS listing endpoint to the feed service.
type FeedHandler struct {
	service *service.FeedService
}

// NewFeedHandler creates a new handler.
func NewFeedHandler(svc *service.FeedService) *FeedHandler {
	return &FeedHandler{service: svc}
}

// Get godoc
// @Summary Fetch a feed
// @Description Fetch and parse an RSS/Atom feed server side
// @Tags Feed
// @Produce json
// @Param url query string true "Feed URL"
// @Success 200 {object} dto.FeedResponse
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 502 {object} response.ErrorEnvelope
// @Router /feed [get]
func (h *FeedHandler) Get(c *gin.Context) {
	res, err := h.service.Fetch(c.Request.Context(), c.Query("url"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}
