package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduboost/course-portal-api/internal/service"
	"github.com/eduboost/course-portal-api/pkg/response"
)

// ExportHandler wires the notes export endpoint.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler creates a new handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// ExportNotes godoc
// @Summary Export notes
// @Description Download a course's notes, in display order, as CSV or PDF
// @Tags Notes
// @Produce text/csv
// @Produce application/pdf
// @Param courseId query string true "Course identifier"
// @Param format query string true "Export format" Enums(csv, pdf)
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 403 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /notes/export [get]
func (h *ExportHandler) ExportNotes(c *gin.Context) {
	format := service.ExportFormat(c.Query("format"))
	result, err := h.service.ExportNotes(c.Request.Context(), c.Query("courseId"), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
