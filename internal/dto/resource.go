package dto

import "github.com/eduboost/course-portal-api/internal/models"

// CreateResourceRequest is the payload for POST /resources.
type CreateResourceRequest struct {
	CourseID string `json:"courseId" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Type     string `json:"type" binding:"required"`
	URL      string `json:"url" binding:"required"`
}

// UpdateResourceRequest is the payload for PUT /resources/:id. The
// course and creation timestamp are not editable.
type UpdateResourceRequest struct {
	Title string `json:"title" binding:"required"`
	Type  string `json:"type" binding:"required"`
	URL   string `json:"url" binding:"required"`
}

// ResourceResponse wraps a single resource.
type ResourceResponse struct {
	Resource models.Resource `json:"resource"`
}

// ResourcesResponse wraps a merged-order resource listing.
type ResourcesResponse struct {
	Resources []models.Resource `json:"resources"`
}
