package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduboost/course-portal-api/internal/dto"
	"github.com/eduboost/course-portal-api/internal/service"
	"github.com/eduboost/course-portal-api/pkg/response"
)

// ResourceHandler wires HTTP endpoints to the resource service.
type ResourceHandler struct {
	service *service.ResourceService
}

// NewResourceHandler creates a new handler.
func NewResourceHandler(svc *service.ResourceService) *ResourceHandler {
	return &ResourceHandler{service: svc}
}

// List godoc
// @Summary List resources
// @Description List a course's resources in display order
// @Tags Resources
// @Produce json
// @Param courseId query string true "Course identifier"
// @Success 200 {object} dto.ResourcesResponse
// @Failure 400 {object} response.ErrorEnvelope
// @Router /resources [get]
func (h *ResourceHandler) List(c *gin.Context) {
	resources, err := h.service.List(c.Request.Context(), c.Query("courseId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.ResourcesResponse{Resources: resources})
}

// Create godoc
// @Summary Create resource
// @Description Create a PDF or link resource and rank it first in the course order
// @Tags Resources
// @Accept json
// @Produce json
// @Param payload body dto.CreateResourceRequest true "Resource payload"
// @Success 201 {object} dto.ResourceResponse
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 403 {object} response.ErrorEnvelope
// @Failure 413 {object} response.ErrorEnvelope
// @Router /resources [post]
func (h *ResourceHandler) Create(c *gin.Context) {
	var req dto.CreateResourceRequest
	if err := bindJSON(c, &req, "invalid resource payload"); err != nil {
		response.Error(c, err)
		return
	}

	resource, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ResourceResponse{Resource: resource})
}

// Update godoc
// @Summary Update resource
// @Description Edit a resource's title, type or url; its place in the course order is kept
// @Tags Resources
// @Accept json
// @Produce json
// @Param id path string true "Resource identifier"
// @Param payload body dto.UpdateResourceRequest true "Resource payload"
// @Success 200 {object} dto.ResourceResponse
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 403 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /resources/{id} [put]
func (h *ResourceHandler) Update(c *gin.Context) {
	var req dto.UpdateResourceRequest
	if err := bindJSON(c, &req, "invalid resource payload"); err != nil {
		response.Error(c, err)
		return
	}

	resource, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.ResourceResponse{Resource: resource})
}

// Delete godoc
// @Summary Delete resource
// @Description Delete a resource and drop it from the course order
// @Tags Resources
// @Produce json
// @Param id path string true "Resource identifier"
// @Success 200 {object} dto.OKResponse
// @Failure 403 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /resources/{id} [delete]
func (h *ResourceHandler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.OKResponse{OK: true})
}
