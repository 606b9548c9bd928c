package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/eduboost/course-portal-api/internal/models"
)

// AccessEventRepository persists access analytics in PostgreSQL.
type AccessEventRepository struct {
	db *sqlx.DB
}

// NewAccessEventRepository constructs the repository.
func NewAccessEventRepository(db *sqlx.DB) *AccessEventRepository {
	return &AccessEventRepository{db: db}
}

// Insert records a single event.
func (r *AccessEventRepository) Insert(ctx context.Context, event *models.AccessEvent) error {
	const query = `INSERT INTO access_events (id, path, method, status, role, course_id, latency_ms, occurred_at)
VALUES (:id, :path, :method, :status, :role, :course_id, :latency_ms, :occurred_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("insert access event: %w", err)
	}
	return nil
}

// SummarizeByCourse aggregates event counts per path for one course.
// An empty courseID aggregates across all courses.
func (r *AccessEventRepository) SummarizeByCourse(ctx context.Context, courseID string) ([]models.AccessSummary, error) {
	var (
		summaries []models.AccessSummary
		err       error
	)
	if courseID == "" {
		const query = `SELECT path, COUNT(*) AS count FROM access_events GROUP BY path ORDER BY count DESC`
		err = r.db.SelectContext(ctx, &summaries, query)
	} else {
		const query = `SELECT path, COUNT(*) AS count FROM access_events WHERE course_id = $1 GROUP BY path ORDER BY count DESC`
		err = r.db.SelectContext(ctx, &summaries, query, courseID)
	}
	if err != nil {
		return nil, fmt.Errorf("summarize access events: %w", err)
	}
	return summaries, nil
}
