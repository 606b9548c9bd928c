package dto

import "github.com/eduboost/course-portal-api/internal/models"

// LoginRequest carries the shared secret for either login path.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse returns the issued session token.
type LoginResponse struct {
	Token string      `json:"token"`
	Role  models.Role `json:"role"`
	TTLMs int64       `json:"ttlMs"`
}

// AuthStatusResponse describes the caller's current session.
type AuthStatusResponse struct {
	AuthEnabled   bool        `json:"authEnabled"`
	Authenticated bool        `json:"authenticated"`
	Role          models.Role `json:"role,omitempty"`
}
