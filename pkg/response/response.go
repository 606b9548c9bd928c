package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/eduboost/course-portal-api/pkg/errors"
	"github.com/eduboost/course-portal-api/pkg/middleware/requestid"
)

// ErrorEnvelope is the error contract shared with the web client.
type ErrorEnvelope struct {
	Error *appErrors.Error `json:"error"`
}

// JSON sends a success payload as-is.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	if appErr.RequestID == nil {
		if reqID := requestid.Value(c); reqID != "" {
			clone := *appErr
			clone.RequestID = &reqID
			appErr = &clone
		}
	}
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, ErrorEnvelope{Error: appErr})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
