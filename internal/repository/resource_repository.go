package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/eduboost/course-portal-api/internal/models"
)

// ResourceRepository persists learning resources in PostgreSQL.
type ResourceRepository struct {
	db *sqlx.DB
}

// NewResourceRepository constructs the repository.
func NewResourceRepository(db *sqlx.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

// ListByCourse returns the course's resources newest first.
func (r *ResourceRepository) ListByCourse(ctx context.Context, courseID string) ([]models.Resource, error) {
	const query = `SELECT id, course_id, type, title, url, created_at
FROM resources WHERE course_id = $1 ORDER BY created_at DESC`
	var resources []models.Resource
	if err := r.db.SelectContext(ctx, &resources, query, courseID); err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	return resources, nil
}

// Create inserts a new resource.
func (r *ResourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	const query = `INSERT INTO resources (id, course_id, type, title, url, created_at)
VALUES (:id, :course_id, :type, :title, :url, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, resource); err != nil {
		return fmt.Errorf("insert resource: %w", err)
	}
	return nil
}

// Update rewrites a resource's editable fields and fills in the row's
// course and creation timestamp.
func (r *ResourceRepository) Update(ctx context.Context, resource *models.Resource) (bool, error) {
	const query = `UPDATE resources SET type = $2, title = $3, url = $4
WHERE id = $1 RETURNING course_id, created_at`
	err := r.db.QueryRowxContext(ctx, query, resource.ID, resource.Type, resource.Title, resource.URL).
		Scan(&resource.CourseID, &resource.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("update resource: %w", err)
	}
	return true, nil
}

// Delete removes a resource, returning the course it belonged to.
func (r *ResourceRepository) Delete(ctx context.Context, id string) (string, bool, error) {
	const query = `DELETE FROM resources WHERE id = $1 RETURNING course_id`
	var courseID string
	err := r.db.QueryRowxContext(ctx, query, id).Scan(&courseID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("delete resource: %w", err)
	}
	return courseID, true, nil
}
