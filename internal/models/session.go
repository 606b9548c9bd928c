package models

import "time"

// Role scopes a session's capabilities.
type Role string

const (
	RoleStudent   Role = "student"
	RoleProfessor Role = "professor"
)

// Valid reports whether the role is one of the two known scopes.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleProfessor
}

// Session is an issued bearer capability. The token itself is the map
// key in the store; the struct carries only what validation needs.
type Session struct {
	Role      Role
	ExpiresAt time.Time
}

// SessionGrant is returned to the client on successful login.
type SessionGrant struct {
	Token string        `json:"token"`
	Role  Role          `json:"role"`
	TTL   time.Duration `json:"-"`
}
