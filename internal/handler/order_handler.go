package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduboost/course-portal-api/internal/dto"
	"github.com/eduboost/course-portal-api/internal/models"
	"github.com/eduboost/course-portal-api/internal/service"
	"github.com/eduboost/course-portal-api/pkg/response"
)

// OrderHandler wires the reorder endpoint to the order service.
type OrderHandler struct {
	service *service.OrderService
}

// NewOrderHandler creates a new handler.
func NewOrderHandler(svc *service.OrderService) *OrderHandler {
	return &OrderHandler{service: svc}
}

// Set godoc
// @Summary Replace display order
// @Description Persist a wholesale replacement of a collection's display order
// @Tags Order
// @Accept json
// @Produce json
// @Param payload body dto.SetOrderRequest true "Order payload"
// @Success 200 {object} dto.OKResponse
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 401 {object} response.ErrorEnvelope
// @Failure 403 {object} response.ErrorEnvelope
// @Router /order [put]
func (h *OrderHandler) Set(c *gin.Context) {
	var req dto.SetOrderRequest
	if err := bindJSON(c, &req, "invalid order payload"); err != nil {
		response.Error(c, err)
		return
	}

	err := h.service.SetOrder(c.Request.Context(), models.EntityType(req.EntityType), req.CourseID, req.OrderedIDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.OKResponse{OK: true})
}
