package models

import "time"

// Note is a course note published by the professor.
type Note struct {
	ID        string    `json:"id" db:"id"`
	CourseID  string    `json:"courseId" db:"course_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Link      string    `json:"link,omitempty" db:"link"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// OrderID implements Orderable.
func (n Note) OrderID() string { return n.ID }

// OrderCreatedAt implements Orderable.
func (n Note) OrderCreatedAt() time.Time { return n.CreatedAt }
