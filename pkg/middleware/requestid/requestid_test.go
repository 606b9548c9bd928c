package requestid

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRequest(t *testing.T, inbound string) (string, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var seen string
	r := gin.New()
	r.Use(Middleware())
	r.GET("/", func(c *gin.Context) {
		seen = Value(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if inbound != "" {
		req.Header.Set("X-Request-ID", inbound)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return seen, w.Header().Get("X-Request-ID")
}

func TestGeneratesIDWhenMissing(t *testing.T) {
	seen, echoed := runRequest(t, "")
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, echoed)
	assert.Len(t, seen, 32)
}

func TestKeepsSaneInboundID(t *testing.T) {
	seen, echoed := runRequest(t, "proxy-abc-123")
	assert.Equal(t, "proxy-abc-123", seen)
	assert.Equal(t, "proxy-abc-123", echoed)
}

func TestReplacesOversizedInboundID(t *testing.T) {
	long := make([]byte, 80)
	for i := range long {
		long[i] = 'a'
	}
	seen, _ := runRequest(t, string(long))
	assert.NotEqual(t, string(long), seen)
	assert.Len(t, seen, 32)
}
