package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eduboost/course-portal-api/internal/models"
	"github.com/eduboost/course-portal-api/internal/service"
)

// AccessLog queues one analytics event per successful request after
// the response is written. Failed requests are not recorded; error
// rates belong to metrics, not usage analytics.
func AccessLog(analytics *service.AnalyticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if analytics == nil || !analytics.Enabled() {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		if status >= http.StatusBadRequest {
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		courseID := c.Query("courseId")
		if courseID == "" {
			courseID = c.Param("courseId")
		}

		analytics.Record(models.AccessEvent{
			Path:       path,
			Method:     c.Request.Method,
			Status:     status,
			Role:       string(RoleFromContext(c)),
			CourseID:   courseID,
			LatencyMs:  time.Since(start).Milliseconds(),
			OccurredAt: time.Now().UTC(),
		})
	}
}
