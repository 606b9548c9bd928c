package dto

import "github.com/eduboost/course-portal-api/internal/models"

// CreateNoteRequest is the payload for POST /notes.
type CreateNoteRequest struct {
	CourseID string `json:"courseId" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
	Link     string `json:"link"`
}

// UpdateNoteRequest is the payload for PUT /notes/:id. The course and
// creation timestamp are not editable.
type UpdateNoteRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
	Link    string `json:"link"`
}

// NoteResponse wraps a single note.
type NoteResponse struct {
	Note models.Note `json:"note"`
}

// NotesResponse wraps a merged-order note listing.
type NotesResponse struct {
	Notes []models.Note `json:"notes"`
}
