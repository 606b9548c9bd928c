package models

import "time"

// ResourceType distinguishes uploaded PDFs from external links.
type ResourceType string

const (
	ResourceTypePDF  ResourceType = "PDF"
	ResourceTypeLink ResourceType = "LIEN"
)

// Valid reports whether the type is a known resource kind.
func (t ResourceType) Valid() bool {
	return t == ResourceTypePDF || t == ResourceTypeLink
}

// Resource is a piece of learning content attached to a course: either
// a PDF stored as a data URL or an external link.
type Resource struct {
	ID        string       `json:"id" db:"id"`
	CourseID  string       `json:"courseId" db:"course_id"`
	Type      ResourceType `json:"type" db:"type"`
	Title     string       `json:"title" db:"title"`
	URL       string       `json:"url" db:"url"`
	CreatedAt time.Time    `json:"createdAt" db:"created_at"`
}

// OrderID implements Orderable.
func (r Resource) OrderID() string { return r.ID }

// OrderCreatedAt implements Orderable.
func (r Resource) OrderCreatedAt() time.Time { return r.CreatedAt }
