package dto

// SetOrderRequest is the payload for PUT /order.
type SetOrderRequest struct {
	EntityType string   `json:"entityType" binding:"required"`
	CourseID   string   `json:"courseId" binding:"required"`
	OrderedIDs []string `json:"orderedIds"`
}

// OKResponse acknowledges a successful mutation with no payload.
type OKResponse struct {
	OK bool `json:"ok"`
}
