package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/eduboost/course-portal-api/internal/models"
	appErrors "github.com/eduboost/course-portal-api/pkg/errors"
)

// OrderStore is the persistence surface for order records. Update must
// serialize concurrent read-modify-writes of the same record.
type OrderStore interface {
	Get(ctx context.Context, entityType models.EntityType, courseID string) (models.OrderRecord, error)
	Set(ctx context.Context, entityType models.EntityType, courseID string, orderedIDs []string) error
	Update(ctx context.Context, entityType models.EntityType, courseID string, fn func([]string) []string) error
}

// OrderService maintains the persisted display order of a collection
// and reconciles it with the live item set at read time. The stored
// sequence ranks ids only; items the sequence does not know about are
// still shown, after all ranked items.
type OrderService struct {
	store  OrderStore
	logger *zap.Logger
}

// NewOrderService constructs the reconciler.
func NewOrderService(store OrderStore, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{store: store, logger: logger}
}

// StoredOrder returns the current id sequence for a collection. A
// collection with no record yields an empty sequence.
func (s *OrderService) StoredOrder(ctx context.Context, entityType models.EntityType, courseID string) ([]string, error) {
	record, err := s.store.Get(ctx, entityType, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load order record")
	}
	return record.OrderedIDs, nil
}

// RecordCreate ranks a newly created item first. If the id is already
// present it moves to the front rather than duplicating.
func (s *OrderService) RecordCreate(ctx context.Context, entityType models.EntityType, courseID, itemID string) error {
	if itemID == "" {
		return nil
	}
	err := s.store.Update(ctx, entityType, courseID, func(ids []string) []string {
		next := make([]string, 0, len(ids)+1)
		next = append(next, itemID)
		for _, id := range ids {
			if id != itemID {
				next = append(next, id)
			}
		}
		return next
	})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to record item creation")
	}
	return nil
}

// RecordDelete drops an id from the sequence. Absence is a no-op, so
// the call is idempotent and tolerates drift.
func (s *OrderService) RecordDelete(ctx context.Context, entityType models.EntityType, courseID, itemID string) error {
	if itemID == "" {
		return nil
	}
	err := s.store.Update(ctx, entityType, courseID, func(ids []string) []string {
		next := ids[:0]
		for _, id := range ids {
			if id != itemID {
				next = append(next, id)
			}
		}
		return next
	})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to record item deletion")
	}
	return nil
}

// SetOrder replaces the sequence wholesale after sanitizing the input:
// duplicates collapse to their first occurrence and empty ids are
// dropped silently. Last write wins; the caller owns the authoritative
// intended order at the moment of the call.
func (s *OrderService) SetOrder(ctx context.Context, entityType models.EntityType, courseID string, orderedIDs []string) error {
	if !entityType.Valid() {
		return appErrors.Clone(appErrors.ErrInvalidInput, `field "entityType" must be "notes" or "resources"`)
	}
	if courseID == "" {
		return appErrors.Clone(appErrors.ErrInvalidInput, `field "courseId" cannot be empty`)
	}

	sanitized := sanitizeIDs(orderedIDs)
	if err := s.store.Set(ctx, entityType, courseID, sanitized); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to persist order")
	}
	s.logger.Debug("order replaced",
		zap.String("entity_type", string(entityType)),
		zap.String("course_id", courseID),
		zap.Int("ids", len(sanitized)),
	)
	return nil
}

func sanitizeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	sanitized := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		sanitized = append(sanitized, id)
	}
	return sanitized
}

// MergeOrdered combines a stored rank sequence with the live item set.
// Ranked items come first, in stored order. Items the sequence never
// ranked sort after every ranked item, newest first among themselves.
// The function is pure: same inputs, same output, every live item
// exactly once.
func MergeOrdered[T models.Orderable](items []T, storedOrder []string) []T {
	if len(items) == 0 {
		return items
	}

	rank := make(map[string]int, len(storedOrder))
	for i, id := range storedOrder {
		if _, dup := rank[id]; !dup {
			rank[id] = i
		}
	}

	merged := make([]T, len(items))
	copy(merged, items)
	sort.SliceStable(merged, func(i, j int) bool {
		ri, iRanked := rank[merged[i].OrderID()]
		rj, jRanked := rank[merged[j].OrderID()]
		switch {
		case iRanked && jRanked:
			return ri < rj
		case iRanked:
			return true
		case jRanked:
			return false
		default:
			return merged[i].OrderCreatedAt().After(merged[j].OrderCreatedAt())
		}
	})
	return merged
}
