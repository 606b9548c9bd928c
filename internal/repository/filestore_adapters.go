package repository

import (
	"context"

	"github.com/eduboost/course-portal-api/internal/models"
)

// The adapters below expose the FileStore through the same method
// surface as the PostgreSQL repositories, so the service layer wires
// either backend without caring which one it got.

type fileNoteStore struct{ store *FileStore }

func (a fileNoteStore) ListByCourse(ctx context.Context, courseID string) ([]models.Note, error) {
	return a.store.ListNotesByCourse(ctx, courseID)
}

func (a fileNoteStore) Create(ctx context.Context, note *models.Note) error {
	return a.store.CreateNote(ctx, note)
}

func (a fileNoteStore) Update(ctx context.Context, note *models.Note) (bool, error) {
	return a.store.UpdateNote(ctx, note)
}

func (a fileNoteStore) Delete(ctx context.Context, id string) (string, bool, error) {
	return a.store.DeleteNote(ctx, id)
}

// NoteStore adapts the file store to the note repository surface.
func (s *FileStore) NoteStore() fileNoteStore { return fileNoteStore{store: s} }

type fileResourceStore struct{ store *FileStore }

func (a fileResourceStore) ListByCourse(ctx context.Context, courseID string) ([]models.Resource, error) {
	return a.store.ListResourcesByCourse(ctx, courseID)
}

func (a fileResourceStore) Create(ctx context.Context, resource *models.Resource) error {
	return a.store.CreateResource(ctx, resource)
}

func (a fileResourceStore) Update(ctx context.Context, resource *models.Resource) (bool, error) {
	return a.store.UpdateResource(ctx, resource)
}

func (a fileResourceStore) Delete(ctx context.Context, id string) (string, bool, error) {
	return a.store.DeleteResource(ctx, id)
}

// ResourceStore adapts the file store to the resource repository surface.
func (s *FileStore) ResourceStore() fileResourceStore { return fileResourceStore{store: s} }

type fileOrderStore struct{ store *FileStore }

func (a fileOrderStore) Get(ctx context.Context, entityType models.EntityType, courseID string) (models.OrderRecord, error) {
	return a.store.GetOrder(ctx, entityType, courseID)
}

func (a fileOrderStore) Set(ctx context.Context, entityType models.EntityType, courseID string, orderedIDs []string) error {
	return a.store.SetOrder(ctx, entityType, courseID, orderedIDs)
}

func (a fileOrderStore) Update(ctx context.Context, entityType models.EntityType, courseID string, fn func([]string) []string) error {
	return a.store.UpdateOrder(ctx, entityType, courseID, fn)
}

// OrderStore adapts the file store to the order repository surface.
func (s *FileStore) OrderStore() fileOrderStore { return fileOrderStore{store: s} }

type fileAccessEventStore struct{ store *FileStore }

func (a fileAccessEventStore) Insert(ctx context.Context, event *models.AccessEvent) error {
	return a.store.InsertAccessEvent(ctx, event)
}

func (a fileAccessEventStore) SummarizeByCourse(ctx context.Context, courseID string) ([]models.AccessSummary, error) {
	return a.store.SummarizeAccessByCourse(ctx, courseID)
}

// AccessEventStore adapts the file store to the access event repository surface.
func (s *FileStore) AccessEventStore() fileAccessEventStore { return fileAccessEventStore{store: s} }
