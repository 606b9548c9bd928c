package models

import "time"

// AccessEvent records one successful authenticated request, written
// asynchronously so the request path never waits on analytics.
type AccessEvent struct {
	ID         string    `json:"id" db:"id"`
	Path       string    `json:"path" db:"path"`
	Method     string    `json:"method" db:"method"`
	Status     int       `json:"status" db:"status"`
	Role       string    `json:"role" db:"role"`
	CourseID   string    `json:"courseId,omitempty" db:"course_id"`
	LatencyMs  int64     `json:"latencyMs" db:"latency_ms"`
	OccurredAt time.Time `json:"occurredAt" db:"occurred_at"`
}

// AccessSummary aggregates events for reporting.
type AccessSummary struct {
	Path  string `json:"path" db:"path"`
	Count int64  `json:"count" db:"count"`
}
