package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduboost/course-portal-api/internal/service"
	"github.com/eduboost/course-portal-api/pkg/response"
)

// AnalyticsHandler wires the access report endpoint.
type AnalyticsHandler struct {
	service *service.AnalyticsService
}

// NewAnalyticsHandler creates a new handler.
func NewAnalyticsHandler(svc *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: svc}
}

// AccessReport godoc
// @Summary Access report
// @Description Aggregate access counts per path, optionally scoped to one course
// @Tags Analytics
// @Produce json
// @Param courseId query string false "Course identifier"
// @Success 200 {object} dto.AccessReportResponse
// @Failure 403 {object} response.ErrorEnvelope
// @Router /analytics/access [get]
func (h *AnalyticsHandler) AccessReport(c *gin.Context) {
	res, err := h.service.Report(c.Request.Context(), c.Query("courseId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}
