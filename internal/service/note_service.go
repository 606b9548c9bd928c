package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eduboost/course-portal-api/internal/dto"
	"github.com/eduboost/course-portal-api/internal/models"
	"github.com/eduboost/course-portal-api/pkg/config"
	appErrors "github.com/eduboost/course-portal-api/pkg/errors"
)

// NoteStore is the persistence surface the note service needs.
// Update applies the editable fields of the passed note to the stored
// row with the same id and fills in the fields it does not change.
// Delete reports the deleted note's course id so order bookkeeping
// never depends on the caller knowing it.
type NoteStore interface {
	ListByCourse(ctx context.Context, courseID string) ([]models.Note, error)
	Create(ctx context.Context, note *models.Note) error
	Update(ctx context.Context, note *models.Note) (bool, error)
	Delete(ctx context.Context, id string) (courseID string, found bool, err error)
}

// NoteService owns note CRUD plus the ordering merge on reads.
type NoteService struct {
	store  NoteStore
	orders *OrderService
	limits config.LimitsConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewNoteService constructs the service.
func NewNoteService(store NoteStore, orders *OrderService, limits config.LimitsConfig, logger *zap.Logger) *NoteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoteService{store: store, orders: orders, limits: limits, logger: logger, now: time.Now}
}

// List returns a course's notes in display order: the stored sequence
// first, then anything it does not rank, newest first.
func (s *NoteService) List(ctx context.Context, courseID string) ([]models.Note, error) {
	courseID, err := requiredText("courseId", courseID, s.limits.MaxTitleLength)
	if err != nil {
		return nil, err
	}

	notes, err := s.store.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list notes")
	}

	storedOrder, err := s.orders.StoredOrder(ctx, models.EntityNotes, courseID)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return MergeOrdered(notes, storedOrder), nil
}

// Create validates and persists a note, then ranks it first in the
// course's display order. An order bookkeeping failure after the note
// is written is logged, not surfaced: the merge shows unranked items
// anyway.
func (s *NoteService) Create(ctx context.Context, req dto.CreateNoteRequest) (models.Note, error) {
	courseID, err := requiredText("courseId", req.CourseID, s.limits.MaxTitleLength)
	if err != nil {
		return models.Note{}, err
	}
	title, err := requiredText("title", req.Title, s.limits.MaxTitleLength)
	if err != nil {
		return models.Note{}, err
	}
	content, err := optionalText("content", req.Content, s.limits.MaxContentLength)
	if err != nil {
		return models.Note{}, err
	}
	link, err := optionalText("link", req.Link, s.limits.MaxURLLength)
	if err != nil {
		return models.Note{}, err
	}
	if content == "" && link == "" {
		return models.Note{}, appErrors.Clone(appErrors.ErrInvalidInput, `a note needs at least one of "content" or "link"`)
	}
	if link != "" && !isValidHTTPURL(link) {
		return models.Note{}, appErrors.Clone(appErrors.ErrInvalidInput, `field "link" must be an absolute http(s) URL`)
	}

	note := models.Note{
		ID:        uuid.NewString(),
		CourseID:  courseID,
		Title:     title,
		Content:   content,
		Link:      link,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Create(ctx, &note); err != nil {
		return models.Note{}, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to create note")
	}

	if err := s.orders.RecordCreate(ctx, models.EntityNotes, courseID, note.ID); err != nil {
		s.logger.Warn("order bookkeeping failed after note create",
			zap.String("note_id", note.ID), zap.Error(err))
	}
	return note, nil
}

// Update edits a note's title, content and link. The id, course and
// creation timestamp stay fixed, so the stored display order is
// untouched.
func (s *NoteService) Update(ctx context.Context, id string, req dto.UpdateNoteRequest) (models.Note, error) {
	if id == "" {
		return models.Note{}, appErrors.Clone(appErrors.ErrInvalidInput, `field "id" cannot be empty`)
	}
	title, err := requiredText("title", req.Title, s.limits.MaxTitleLength)
	if err != nil {
		return models.Note{}, err
	}
	content, err := optionalText("content", req.Content, s.limits.MaxContentLength)
	if err != nil {
		return models.Note{}, err
	}
	link, err := optionalText("link", req.Link, s.limits.MaxURLLength)
	if err != nil {
		return models.Note{}, err
	}
	if content == "" && link == "" {
		return models.Note{}, appErrors.Clone(appErrors.ErrInvalidInput, `a note needs at least one of "content" or "link"`)
	}
	if link != "" && !isValidHTTPURL(link) {
		return models.Note{}, appErrors.Clone(appErrors.ErrInvalidInput, `field "link" must be an absolute http(s) URL`)
	}

	note := models.Note{ID: id, Title: title, Content: content, Link: link}
	found, err := s.store.Update(ctx, &note)
	if err != nil {
		return models.Note{}, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to update note")
	}
	if !found {
		return models.Note{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("note %q not found", id))
	}
	return note, nil
}

// Delete removes a note and drops it from the display order. The
// course is resolved from the deleted row itself.
func (s *NoteService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrInvalidInput, `field "id" cannot be empty`)
	}

	courseID, found, err := s.store.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to delete note")
	}
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("note %q not found", id))
	}

	if err := s.orders.RecordDelete(ctx, models.EntityNotes, courseID, id); err != nil {
		s.logger.Warn("order bookkeeping failed after note delete",
			zap.String("note_id", id), zap.Error(err))
	}
	return nil
}
