package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eduboost/course-portal-api/internal/models"
	"github.com/eduboost/course-portal-api/internal/service"
	appErrors "github.com/eduboost/course-portal-api/pkg/errors"
	"github.com/eduboost/course-portal-api/pkg/response"
)

// ContextRoleKey is the gin context key storing the session role.
const ContextRoleKey = "sessionRole"

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// RequireSession protects routes behind a valid session token. When
// authentication is disabled server-side the gate is a no-op.
func RequireSession(sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sessions.Enabled() {
			c.Next()
			return
		}

		role, err := sessions.Validate(bearerToken(c))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextRoleKey, role)
		c.Next()
	}
}

// OptionalSession attaches the role when a valid token is present but
// never blocks.
func OptionalSession(sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if role, err := sessions.Validate(token); err == nil {
				c.Set(ContextRoleKey, role)
			}
		}
		c.Next()
	}
}

// RequireProfessor gates mutation routes on the professor role. Unlike
// RequireSession it stays active even when student authentication is
// disabled: content mutations always need a professor session.
func RequireProfessor(sessions *service.SessionService, metrics *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := sessions.RequireRole(bearerToken(c), models.RoleProfessor)
		if err != nil {
			if metrics != nil {
				metrics.RecordAuthFailure(appErrors.FromError(err).Code)
			}
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextRoleKey, models.RoleProfessor)
		c.Next()
	}
}

// RoleFromContext returns the role attached by the session middleware.
func RoleFromContext(c *gin.Context) models.Role {
	value, ok := c.Get(ContextRoleKey)
	if !ok {
		return ""
	}
	role, ok := value.(models.Role)
	if !ok {
		return ""
	}
	return role
}
