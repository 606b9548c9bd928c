package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduboost/course-portal-api/internal/dto"
	"github.com/eduboost/course-portal-api/internal/service"
	"github.com/eduboost/course-portal-api/pkg/response"
)

// NoteHandler wires HTTP endpoints to the note service.
type NoteHandler struct {
	service *service.NoteService
}

// NewNoteHandler creates a new handler.
func NewNoteHandler(svc *service.NoteService) *NoteHandler {
	return &NoteHandler{service: svc}
}

// List godoc
// @Summary List notes
// @Description List a course's notes in display order
// @Tags Notes
// @Produce json
// @Param courseId query string true "Course identifier"
// @Success 200 {object} dto.NotesResponse
// @Failure 400 {object} response.ErrorEnvelope
// @Router /notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	notes, err := h.service.List(c.Request.Context(), c.Query("courseId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.NotesResponse{Notes: notes})
}

// Create godoc
// @Summary Create note
// @Description Create a note and rank it first in the course order
// @Tags Notes
// @Accept json
// @Produce json
// @Param payload body dto.CreateNoteRequest true "Note payload"
// @Success 201 {object} dto.NoteResponse
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 403 {object} response.ErrorEnvelope
// @Failure 413 {object} response.ErrorEnvelope
// @Router /notes [post]
func (h *NoteHandler) Create(c *gin.Context) {
	var req dto.CreateNoteRequest
	if err := bindJSON(c, &req, "invalid note payload"); err != nil {
		response.Error(c, err)
		return
	}

	note, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NoteResponse{Note: note})
}

// Update godoc
// @Summary Update note
// @Description Edit a note's title, content or link; its place in the course order is kept
// @Tags Notes
// @Accept json
// @Produce json
// @Param id path string true "Note identifier"
// @Param payload body dto.UpdateNoteRequest true "Note payload"
// @Success 200 {object} dto.NoteResponse
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 403 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /notes/{id} [put]
func (h *NoteHandler) Update(c *gin.Context) {
	var req dto.UpdateNoteRequest
	if err := bindJSON(c, &req, "invalid note payload"); err != nil {
		response.Error(c, err)
		return
	}

	note, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.NoteResponse{Note: note})
}

// Delete godoc
// @Summary Delete note
// @Description Delete a note and drop it from the course order
// @Tags Notes
// @Produce json
// @Param id path string true "Note identifier"
// @Success 200 {object} dto.OKResponse
// @Failure 403 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /notes/{id} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.OKResponse{OK: true})
}
