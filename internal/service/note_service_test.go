package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduboost/course-portal-api/internal/dto"
	"github.com/eduboost/course-portal-api/internal/models"
	"github.com/eduboost/course-portal-api/pkg/config"
	appErrors "github.com/eduboost/course-portal-api/pkg/errors"
)

var testLimits = config.LimitsConfig{
	MaxContentLength:     12000,
	MaxPodcastTextLength: 8000,
	MaxPasswordLength:    256,
	MaxURLLength:         20000,
	MaxTitleLength:       180,
}

type mockNoteStore struct {
	notes   []models.Note
	listErr error
}

func (m *mockNoteStore) ListByCourse(_ context.Context, courseID string) ([]models.Note, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []models.Note
	for _, note := range m.notes {
		if note.CourseID == courseID {
			out = append(out, note)
		}
	}
	return out, nil
}

func (m *mockNoteStore) Create(_ context.Context, note *models.Note) error {
	m.notes = append(m.notes, *note)
	return nil
}

func (m *mockNoteStore) Update(_ context.Context, note *models.Note) (bool, error) {
	for i := range m.notes {
		if m.notes[i].ID == note.ID {
			m.notes[i].Title = note.Title
			m.notes[i].Content = note.Content
			m.notes[i].Link = note.Link
			*note = m.notes[i]
			return true, nil
		}
	}
	return false, nil
}

func (m *mockNoteStore) Delete(_ context.Context, id string) (string, bool, error) {
	for i, note := range m.notes {
		if note.ID == id {
			m.notes = append(m.notes[:i], m.notes[i+1:]...)
			return note.CourseID, true, nil
		}
	}
	return "", false, nil
}

func newNoteFixture() (*NoteService, *mockNoteStore, *memoryOrderStore) {
	store := &mockNoteStore{}
	orderStore := newMemoryOrderStore()
	orders := NewOrderService(orderStore, nil)
	return NewNoteService(store, orders, testLimits, nil), store, orderStore
}

func TestNoteCreateRanksFirst(t *testing.T) {
	svc, store, _ := newNoteFixture()
	ctx := context.Background()

	first, err := svc.Create(ctx, dto.CreateNoteRequest{CourseID: "math", Title: "Chapitre 1", Content: "Les bases"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, dto.CreateNoteRequest{CourseID: "math", Title: "Chapitre 2", Content: "La suite"})
	require.NoError(t, err)

	assert.Len(t, store.notes, 2)
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	notes, err := svc.List(ctx, "math")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, second.ID, notes[0].ID)
	assert.Equal(t, first.ID, notes[1].ID)
}

func TestNoteCreateValidation(t *testing.T) {
	svc, _, _ := newNoteFixture()
	ctx := context.Background()

	cases := []struct {
		name string
		req  dto.CreateNoteRequest
		code string
	}{
		{"missing course", dto.CreateNoteRequest{Title: "t", Content: "c"}, "INVALID_INPUT"},
		{"missing title", dto.CreateNoteRequest{CourseID: "math", Content: "c"}, "INVALID_INPUT"},
		{"neither content nor link", dto.CreateNoteRequest{CourseID: "math", Title: "t", Content: "   "}, "INVALID_INPUT"},
		{"content too long", dto.CreateNoteRequest{CourseID: "math", Title: "t", Content: strings.Repeat("x", 12001)}, "INPUT_TOO_LARGE"},
		{"title too long", dto.CreateNoteRequest{CourseID: "math", Title: strings.Repeat("t", 181), Content: "c"}, "INPUT_TOO_LARGE"},
		{"bad link", dto.CreateNoteRequest{CourseID: "math", Title: "t", Content: "c", Link: "ftp://host/file"}, "INVALID_INPUT"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.code, appErrors.FromError(err).Code)
		})
	}
}

func TestNoteCreateAcceptsLinkOnly(t *testing.T) {
	svc, _, _ := newNoteFixture()

	note, err := svc.Create(context.Background(), dto.CreateNoteRequest{
		CourseID: "math",
		Title:    "Polycopié",
		Link:     "https://example.org/poly.pdf",
	})
	require.NoError(t, err)
	assert.Empty(t, note.Content)
	assert.Equal(t, "https://example.org/poly.pdf", note.Link)
}

func TestNoteCreateTrimsFields(t *testing.T) {
	svc, _, _ := newNoteFixture()

	note, err := svc.Create(context.Background(), dto.CreateNoteRequest{
		CourseID: "  math  ",
		Title:    "  Chapitre 1  ",
		Content:  "  Les bases  ",
		Link:     "  https://example.org/cours  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "math", note.CourseID)
	assert.Equal(t, "Chapitre 1", note.Title)
	assert.Equal(t, "Les bases", note.Content)
	assert.Equal(t, "https://example.org/cours", note.Link)
}

func TestNoteUpdateKeepsIdentityAndOrder(t *testing.T) {
	svc, _, orderStore := newNoteFixture()
	ctx := context.Background()

	first, err := svc.Create(ctx, dto.CreateNoteRequest{CourseID: "math", Title: "Avant", Content: "v1"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, dto.CreateNoteRequest{CourseID: "math", Title: "Autre", Content: "x"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, first.ID, dto.UpdateNoteRequest{Title: "Après", Content: "v2"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)
	assert.Equal(t, first.CourseID, updated.CourseID)
	assert.Equal(t, first.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Après", updated.Title)
	assert.Equal(t, "v2", updated.Content)

	// Editing never touches the stored sequence.
	assert.Equal(t, []string{second.ID, first.ID}, orderStore.orders["notes/math"])
}

func TestNoteUpdateValidation(t *testing.T) {
	svc, _, _ := newNoteFixture()
	ctx := context.Background()

	note, err := svc.Create(ctx, dto.CreateNoteRequest{CourseID: "math", Title: "t", Content: "c"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, note.ID, dto.UpdateNoteRequest{Title: "  "})
	require.Error(t, err)
	assert.Equal(t, "INVALID_INPUT", appErrors.FromError(err).Code)

	_, err = svc.Update(ctx, note.ID, dto.UpdateNoteRequest{Title: "t"})
	require.Error(t, err)
	assert.Equal(t, "INVALID_INPUT", appErrors.FromError(err).Code)

	_, err = svc.Update(ctx, "missing", dto.UpdateNoteRequest{Title: "t", Content: "c"})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", appErrors.FromError(err).Code)
}

func TestNoteDeleteUnknownIDReturnsNotFound(t *testing.T) {
	svc, _, _ := newNoteFixture()

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", appErrors.FromError(err).Code)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestNoteDeleteDropsFromOrder(t *testing.T) {
	svc, _, orderStore := newNoteFixture()
	ctx := context.Background()

	// The caller supplies only the id; the course comes from the
	// deleted row itself.
	keep, err := svc.Create(ctx, dto.CreateNoteRequest{CourseID: "math", Title: "A", Content: "a"})
	require.NoError(t, err)
	gone, err := svc.Create(ctx, dto.CreateNoteRequest{CourseID: "math", Title: "B", Content: "b"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, gone.ID))

	assert.Equal(t, []string{keep.ID}, orderStore.orders["notes/math"])
}

func TestNoteListMergesStoredOrder(t *testing.T) {
	svc, store, orderStore := newNoteFixture()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	store.notes = []models.Note{
		{ID: "a", CourseID: "math", Title: "A", Content: "a", CreatedAt: base},
		{ID: "b", CourseID: "math", Title: "B", Content: "b", CreatedAt: base.Add(time.Hour)},
		{ID: "c", CourseID: "math", Title: "C", Content: "c", CreatedAt: base.Add(2 * time.Hour)},
	}
	orderStore.orders["notes/math"] = []string{"b", "a"}

	notes, err := svc.List(ctx, "math")
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "b", notes[0].ID)
	assert.Equal(t, "a", notes[1].ID)
	assert.Equal(t, "c", notes[2].ID)
}

func TestNoteListEmptyCourseYieldsEmptySlice(t *testing.T) {
	svc, _, _ := newNoteFixture()

	notes, err := svc.List(context.Background(), "empty")
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}
