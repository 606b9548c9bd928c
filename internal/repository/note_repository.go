package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/eduboost/course-portal-api/internal/models"
)

// NoteRepository persists notes in PostgreSQL.
type NoteRepository struct {
	db *sqlx.DB
}

// NewNoteRepository constructs the repository.
func NewNoteRepository(db *sqlx.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// ListByCourse returns the course's notes newest first. Display order
// is applied later by the ordering merge.
func (r *NoteRepository) ListByCourse(ctx context.Context, courseID string) ([]models.Note, error) {
	const query = `SELECT id, course_id, title, content, link, created_at
FROM notes WHERE course_id = $1 ORDER BY created_at DESC`
	var notes []models.Note
	if err := r.db.SelectContext(ctx, &notes, query, courseID); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// Create inserts a new note.
func (r *NoteRepository) Create(ctx context.Context, note *models.Note) error {
	const query = `INSERT INTO notes (id, course_id, title, content, link, created_at)
VALUES (:id, :course_id, :title, :content, :link, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, note); err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

// Update rewrites a note's editable fields and fills in the row's
// course and creation timestamp.
func (r *NoteRepository) Update(ctx context.Context, note *models.Note) (bool, error) {
	const query = `UPDATE notes SET title = $2, content = $3, link = $4
WHERE id = $1 RETURNING course_id, created_at`
	err := r.db.QueryRowxContext(ctx, query, note.ID, note.Title, note.Content, note.Link).
		Scan(&note.CourseID, &note.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("update note: %w", err)
	}
	return true, nil
}

// Delete removes a note, returning the course it belonged to.
func (r *NoteRepository) Delete(ctx context.Context, id string) (string, bool, error) {
	const query = `DELETE FROM notes WHERE id = $1 RETURNING course_id`
	var courseID string
	err := r.db.QueryRowxContext(ctx, query, id).Scan(&courseID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("delete note: %w", err)
	}
	return courseID, true, nil
}
