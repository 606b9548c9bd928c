package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/eduboost/course-portal-api/internal/models"
	"github.com/eduboost/course-portal-api/pkg/storage"
)

// FileStore is the flat-file persistence backend. It keeps the whole
// document in memory and rewrites the backing JSON file on every
// mutation, which is plenty for a single-instance deployment. It
// implements the same store surface as the PostgreSQL repositories.
type FileStore struct {
	file *storage.JSONFile

	mu  sync.Mutex
	doc fileDocument
}

type fileDocument struct {
	Notes        []models.Note        `json:"notes"`
	Resources    []models.Resource    `json:"resources"`
	Orders       map[string][]string  `json:"orders"`
	AccessEvents []models.AccessEvent `json:"accessEvents,omitempty"`
}

// NewFileStore loads (or initialises) the backing file.
func NewFileStore(path string) (*FileStore, error) {
	file, err := storage.NewJSONFile(path)
	if err != nil {
		return nil, err
	}

	store := &FileStore{file: file, doc: fileDocument{Orders: map[string][]string{}}}
	if err := file.Load(&store.doc); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load file store: %w", err)
		}
		if err := file.Save(store.doc); err != nil {
			return nil, fmt.Errorf("initialise file store: %w", err)
		}
	}
	if store.doc.Orders == nil {
		store.doc.Orders = map[string][]string{}
	}
	return store, nil
}

func orderKey(entityType models.EntityType, courseID string) string {
	return string(entityType) + "/" + courseID
}

func (s *FileStore) persistLocked() error {
	if err := s.file.Save(s.doc); err != nil {
		return fmt.Errorf("persist file store: %w", err)
	}
	return nil
}

// ListNotesByCourse returns the course's notes newest first.
func (s *FileStore) ListNotesByCourse(_ context.Context, courseID string) ([]models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var notes []models.Note
	for _, note := range s.doc.Notes {
		if note.CourseID == courseID {
			notes = append(notes, note)
		}
	}
	sort.SliceStable(notes, func(i, j int) bool { return notes[i].CreatedAt.After(notes[j].CreatedAt) })
	return notes, nil
}

// CreateNote prepends a note to the document.
func (s *FileStore) CreateNote(_ context.Context, note *models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Notes = append([]models.Note{*note}, s.doc.Notes...)
	return s.persistLocked()
}

// UpdateNote rewrites a note's editable fields in place and fills in
// the stored course and creation timestamp.
func (s *FileStore) UpdateNote(_ context.Context, note *models.Note) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.Notes {
		if s.doc.Notes[i].ID != note.ID {
			continue
		}
		s.doc.Notes[i].Title = note.Title
		s.doc.Notes[i].Content = note.Content
		s.doc.Notes[i].Link = note.Link
		*note = s.doc.Notes[i]
		return true, s.persistLocked()
	}
	return false, nil
}

// DeleteNote removes a note, returning the course it belonged to.
func (s *FileStore) DeleteNote(_ context.Context, id string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.doc.Notes[:0]
	courseID := ""
	found := false
	for _, note := range s.doc.Notes {
		if note.ID == id {
			courseID = note.CourseID
			found = true
			continue
		}
		kept = append(kept, note)
	}
	if !found {
		return "", false, nil
	}
	s.doc.Notes = kept
	return courseID, true, s.persistLocked()
}

// ListResourcesByCourse returns the course's resources newest first.
func (s *FileStore) ListResourcesByCourse(_ context.Context, courseID string) ([]models.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var resources []models.Resource
	for _, resource := range s.doc.Resources {
		if resource.CourseID == courseID {
			resources = append(resources, resource)
		}
	}
	sort.SliceStable(resources, func(i, j int) bool { return resources[i].CreatedAt.After(resources[j].CreatedAt) })
	return resources, nil
}

// CreateResource prepends a resource to the document.
func (s *FileStore) CreateResource(_ context.Context, resource *models.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Resources = append([]models.Resource{*resource}, s.doc.Resources...)
	return s.persistLocked()
}

// UpdateResource rewrites a resource's editable fields in place and
// fills in the stored course and creation timestamp.
func (s *FileStore) UpdateResource(_ context.Context, resource *models.Resource) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.Resources {
		if s.doc.Resources[i].ID != resource.ID {
			continue
		}
		s.doc.Resources[i].Type = resource.Type
		s.doc.Resources[i].Title = resource.Title
		s.doc.Resources[i].URL = resource.URL
		*resource = s.doc.Resources[i]
		return true, s.persistLocked()
	}
	return false, nil
}

// DeleteResource removes a resource, returning the course it belonged to.
func (s *FileStore) DeleteResource(_ context.Context, id string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.doc.Resources[:0]
	courseID := ""
	found := false
	for _, resource := range s.doc.Resources {
		if resource.ID == id {
			courseID = resource.CourseID
			found = true
			continue
		}
		kept = append(kept, resource)
	}
	if !found {
		return "", false, nil
	}
	s.doc.Resources = kept
	return courseID, true, s.persistLocked()
}

// GetOrder fetches the stored order; missing records yield an empty one.
func (s *FileStore) GetOrder(_ context.Context, entityType models.EntityType, courseID string) (models.OrderRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.doc.Orders[orderKey(entityType, courseID)]
	record := models.OrderRecord{EntityType: entityType, CourseID: courseID}
	record.OrderedIDs = append(record.OrderedIDs, ids...)
	return record, nil
}

// SetOrder replaces the stored sequence wholesale.
func (s *FileStore) SetOrder(_ context.Context, entityType models.EntityType, courseID string, orderedIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Orders[orderKey(entityType, courseID)] = append([]string(nil), orderedIDs...)
	return s.persistLocked()
}

// UpdateOrder applies fn to the stored sequence under the store mutex,
// serializing concurrent read-modify-writes.
func (s *FileStore) UpdateOrder(_ context.Context, entityType models.EntityType, courseID string, fn func([]string) []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := orderKey(entityType, courseID)
	s.doc.Orders[key] = fn(s.doc.Orders[key])
	return s.persistLocked()
}

// InsertAccessEvent appends an analytics event.
func (s *FileStore) InsertAccessEvent(_ context.Context, event *models.AccessEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.AccessEvents = append(s.doc.AccessEvents, *event)
	return s.persistLocked()
}

// SummarizeAccessByCourse aggregates event counts per path.
func (s *FileStore) SummarizeAccessByCourse(_ context.Context, courseID string) ([]models.AccessSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := map[string]int64{}
	order := []string{}
	for _, event := range s.doc.AccessEvents {
		if courseID != "" && event.CourseID != courseID {
			continue
		}
		if _, seen := counts[event.Path]; !seen {
			order = append(order, event.Path)
		}
		counts[event.Path]++
	}

	summaries := make([]models.AccessSummary, 0, len(order))
	for _, path := range order {
		summaries = append(summaries, models.AccessSummary{Path: path, Count: counts[path]})
	}
	sort.SliceStable(summaries, func(i, j int) bool { return summaries[i].Count > summaries[j].Count })
	return summaries, nil
}
