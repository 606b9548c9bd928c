package models

import "time"

// EntityType names an orderable collection kind.
type EntityType string

const (
	EntityNotes     EntityType = "notes"
	EntityResources EntityType = "resources"
)

// Valid reports whether the entity type is known.
func (t EntityType) Valid() bool {
	return t == EntityNotes || t == EntityResources
}

// OrderRecord is the persisted display order for one (entity type,
// course) pair. The sequence ranks item ids only; it is never the
// source of truth for item existence.
type OrderRecord struct {
	EntityType EntityType `json:"entityType" db:"entity_type"`
	CourseID   string     `json:"courseId" db:"course_id"`
	OrderedIDs []string   `json:"orderedIds" db:"-"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
}

// Orderable is anything that can be ranked by an order record.
type Orderable interface {
	OrderID() string
	OrderCreatedAt() time.Time
}
