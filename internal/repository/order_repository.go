package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/eduboost/course-portal-api/internal/models"
)

// OrderRepository persists order records in PostgreSQL. Each record is
// one row keyed by (entity_type, course_id) with the id sequence held
// in a text array, so a reorder is a single-row write regardless of
// collection size.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository constructs the repository.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Get fetches the stored order. A missing row yields an empty record,
// not an error: absence of an order is a normal state.
func (r *OrderRepository) Get(ctx context.Context, entityType models.EntityType, courseID string) (models.OrderRecord, error) {
	const query = `SELECT entity_type, course_id, ordered_ids, updated_at
FROM order_records WHERE entity_type = $1 AND course_id = $2`

	record := models.OrderRecord{EntityType: entityType, CourseID: courseID}
	var ids pq.StringArray
	row := r.db.QueryRowxContext(ctx, query, entityType, courseID)
	if err := row.Scan(&record.EntityType, &record.CourseID, &ids, &record.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return record, nil
		}
		return record, fmt.Errorf("get order record: %w", err)
	}
	record.OrderedIDs = []string(ids)
	return record, nil
}

// Set replaces the stored sequence wholesale.
func (r *OrderRepository) Set(ctx context.Context, entityType models.EntityType, courseID string, orderedIDs []string) error {
	const query = `INSERT INTO order_records (entity_type, course_id, ordered_ids, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (entity_type, course_id)
DO UPDATE SET ordered_ids = EXCLUDED.ordered_ids, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, entityType, courseID, pq.StringArray(orderedIDs), time.Now().UTC()); err != nil {
		return fmt.Errorf("set order record: %w", err)
	}
	return nil
}

// Update applies fn to the stored sequence inside a transaction. The
// row is locked for the duration so two concurrent read-modify-writes
// serialize instead of clobbering each other.
func (r *OrderRepository) Update(ctx context.Context, entityType models.EntityType, courseID string, fn func([]string) []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin order update tx: %w", err)
	}

	const selectQuery = `SELECT ordered_ids FROM order_records
WHERE entity_type = $1 AND course_id = $2 FOR UPDATE`
	var ids pq.StringArray
	err = tx.QueryRowxContext(ctx, selectQuery, entityType, courseID).Scan(&ids)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		_ = tx.Rollback()
		return fmt.Errorf("lock order record: %w", err)
	}

	next := fn([]string(ids))

	const upsertQuery = `INSERT INTO order_records (entity_type, course_id, ordered_ids, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (entity_type, course_id)
DO UPDATE SET ordered_ids = EXCLUDED.ordered_ids, updated_at = EXCLUDED.updated_at`
	if _, err := tx.ExecContext(ctx, upsertQuery, entityType, courseID, pq.StringArray(next), time.Now().UTC()); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("write order record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order update tx: %w", err)
	}
	return nil
}
