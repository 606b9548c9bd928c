package dto

import "github.com/eduboost/course-portal-api/internal/models"

// AccessReportResponse aggregates access events per path.
type AccessReportResponse struct {
	CourseID string                 `json:"courseId,omitempty"`
	Total    int64                  `json:"total"`
	ByPath   []models.AccessSummary `json:"byPath"`
}
