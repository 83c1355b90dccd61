package analytics

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Recorder stores visits without blocking the request.
type Recorder interface {
	RecordAsync(ip, userAgent, path string)
}

// untracked lists path prefixes never recorded: assets, the admin area and
// health checks.
var untracked = []string{
	"/static/",
	"/images/",
	"/wasm/",
	"/admin/",
	"/favicon",
	"/healthz",
	"/privacy",
}

// Tracked reports whether a request path counts as a visit. Of the content
// store only post bodies count; the feeds are fetched on every page load.
func Tracked(path string) bool {
	if strings.HasPrefix(path, "/content/") {
		return strings.HasPrefix(path, PostPrefix)
	}
	for _, prefix := range untracked {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

// Middleware records successful page and post requests. Visitors sending
// "DNT: 1" are never recorded.
func Middleware(rec Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if !Tracked(path) || c.GetHeader("DNT") == "1" || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		rec.RecordAsync(c.ClientIP(), c.GetHeader("User-Agent"), path)
	}
}
