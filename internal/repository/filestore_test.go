package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduboost/course-portal-api/internal/models"
)

func newFileStoreFixture(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "portal.json"))
	require.NoError(t, err)
	return store
}

func TestFileStoreNotesRoundTrip(t *testing.T) {
	store := newFileStoreFixture(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.CreateNote(ctx, &models.Note{ID: "a", CourseID: "math", Title: "A", Content: "a", CreatedAt: base}))
	require.NoError(t, store.CreateNote(ctx, &models.Note{ID: "b", CourseID: "math", Title: "B", Content: "b", CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, store.CreateNote(ctx, &models.Note{ID: "x", CourseID: "physics", Title: "X", Content: "x", CreatedAt: base}))

	notes, err := store.ListNotesByCourse(ctx, "math")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "b", notes[0].ID)
	assert.Equal(t, "a", notes[1].ID)

	courseID, found, err := store.DeleteNote(ctx, "a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "math", courseID)

	_, found, err = store.DeleteNote(ctx, "a")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileStoreUpdateNoteKeepsCourseAndTimestamp(t *testing.T) {
	store := newFileStoreFixture(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.CreateNote(ctx, &models.Note{ID: "a", CourseID: "math", Title: "A", Content: "v1", CreatedAt: base}))

	note := models.Note{ID: "a", Title: "A bis", Content: "v2", Link: "https://example.org"}
	found, err := store.UpdateNote(ctx, &note)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "math", note.CourseID)
	assert.Equal(t, base, note.CreatedAt)

	notes, err := store.ListNotesByCourse(ctx, "math")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "A bis", notes[0].Title)
	assert.Equal(t, "v2", notes[0].Content)

	missing := models.Note{ID: "ghost", Title: "x", Content: "y"}
	found, err = store.UpdateNote(ctx, &missing)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.json")
	ctx := context.Background()

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.CreateNote(ctx, &models.Note{ID: "a", CourseID: "math", Title: "A", Content: "a", CreatedAt: time.Now()}))
	require.NoError(t, store.SetOrder(ctx, models.EntityNotes, "math", []string{"a"}))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	notes, err := reopened.ListNotesByCourse(ctx, "math")
	require.NoError(t, err)
	assert.Len(t, notes, 1)

	record, err := reopened.GetOrder(ctx, models.EntityNotes, "math")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, record.OrderedIDs)
}

func TestFileStoreOrderUpdateSerializesReadModifyWrite(t *testing.T) {
	store := newFileStoreFixture(t)
	ctx := context.Background()

	require.NoError(t, store.UpdateOrder(ctx, models.EntityResources, "math", func(ids []string) []string {
		return append([]string{"a"}, ids...)
	}))
	require.NoError(t, store.UpdateOrder(ctx, models.EntityResources, "math", func(ids []string) []string {
		return append([]string{"b"}, ids...)
	}))

	record, err := store.GetOrder(ctx, models.EntityResources, "math")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, record.OrderedIDs)
}

func TestFileStoreOrdersAreScopedPerEntityType(t *testing.T) {
	store := newFileStoreFixture(t)
	ctx := context.Background()

	require.NoError(t, store.SetOrder(ctx, models.EntityNotes, "math", []string{"n1"}))
	require.NoError(t, store.SetOrder(ctx, models.EntityResources, "math", []string{"r1"}))

	notes, err := store.GetOrder(ctx, models.EntityNotes, "math")
	require.NoError(t, err)
	resources, err := store.GetOrder(ctx, models.EntityResources, "math")
	require.NoError(t, err)
	assert.Equal(t, []string{"n1"}, notes.OrderedIDs)
	assert.Equal(t, []string{"r1"}, resources.OrderedIDs)
}

func TestFileStoreAccessEventSummary(t *testing.T) {
	store := newFileStoreFixture(t)
	ctx := context.Background()

	events := []models.AccessEvent{
		{ID: "1", Path: "/api/notes", CourseID: "math"},
		{ID: "2", Path: "/api/notes", CourseID: "math"},
		{ID: "3", Path: "/api/resources", CourseID: "math"},
		{ID: "4", Path: "/api/notes", CourseID: "physics"},
	}
	for i := range events {
		require.NoError(t, store.InsertAccessEvent(ctx, &events[i]))
	}

	summaries, err := store.SummarizeAccessByCourse(ctx, "math")
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "/api/notes", summaries[0].Path)
	assert.Equal(t, int64(2), summaries[0].Count)

	all, err := store.SummarizeAccessByCourse(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), all[0].Count)
}
