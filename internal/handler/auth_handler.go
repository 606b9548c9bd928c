package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eduboost/course-portal-api/internal/dto"
	"github.com/eduboost/course-portal-api/internal/models"
	"github.com/eduboost/course-portal-api/internal/service"
	appErrors "github.com/eduboost/course-portal-api/pkg/errors"
	"github.com/eduboost/course-portal-api/pkg/response"
)

// AuthHandler wires HTTP endpoints to the session service.
type AuthHandler struct {
	sessions    *service.SessionService
	metrics     *service.MetricsService
	maxPassword int
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(sessions *service.SessionService, metrics *service.MetricsService, maxPassword int) *AuthHandler {
	return &AuthHandler{sessions: sessions, metrics: metrics, maxPassword: maxPassword}
}

// Login godoc
// @Summary Student login
// @Description Exchange the shared student password for a bearer token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Login payload"
// @Success 201 {object} dto.LoginResponse
// @Failure 401 {object} response.ErrorEnvelope
// @Failure 500 {object} response.ErrorEnvelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	h.login(c, models.RoleStudent)
}

// ProfessorLogin godoc
// @Summary Professor login
// @Description Exchange the professor password for a professor-scoped bearer token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Login payload"
// @Success 201 {object} dto.LoginResponse
// @Failure 401 {object} response.ErrorEnvelope
// @Failure 500 {object} response.ErrorEnvelope
// @Router /auth/prof-login [post]
func (h *AuthHandler) ProfessorLogin(c *gin.Context) {
	h.login(c, models.RoleProfessor)
}

func (h *AuthHandler) login(c *gin.Context, role models.Role) {
	var req dto.LoginRequest
	if err := bindJSON(c, &req, "invalid login payload"); err != nil {
		response.Error(c, err)
		return
	}
	if len(req.Password) > h.maxPassword {
		response.Error(c, appErrors.Clone(appErrors.ErrInputTooLarge, `field "password" exceeds maximum length`))
		return
	}

	grant, err := h.sessions.Issue(req.Password, role)
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordAuthFailure(appErrors.FromError(err).Code)
		}
		response.Error(c, err)
		return
	}

	response.Created(c, dto.LoginResponse{
		Token: grant.Token,
		Role:  grant.Role,
		TTLMs: grant.TTL.Milliseconds(),
	})
}

// Status godoc
// @Summary Session status
// @Description Report whether the presented token (if any) is a live session
// @Tags Authentication
// @Produce json
// @Success 200 {object} dto.AuthStatusResponse
// @Router /auth/status [get]
func (h *AuthHandler) Status(c *gin.Context) {
	status := dto.AuthStatusResponse{AuthEnabled: h.sessions.Enabled()}

	// With the gate disabled every caller counts as authenticated, but
	// no role is granted: professor actions still need a real login.
	if !status.AuthEnabled {
		status.Authenticated = true
		response.JSON(c, http.StatusOK, status)
		return
	}

	if token := bearerToken(c); token != "" {
		if role, err := h.sessions.Validate(token); err == nil {
			status.Authenticated = true
			status.Role = role
		}
	}
	response.JSON(c, http.StatusOK, status)
}

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
