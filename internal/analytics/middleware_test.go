package analytics

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type visit struct{ ip, ua, path string }

type recorder struct {
	mu     sync.Mutex
	visits []visit
}

func (r *recorder) RecordAsync(ip, ua, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visits = append(r.visits, visit{ip, ua, path})
}

func newEngine(rec Recorder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(rec))
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	r.GET("/", ok)
	r.GET("/static/*any", ok)
	r.GET("/content/*any", ok)
	r.POST("/", ok)
	return r
}

func serve(r http.Handler, method, path string, headers map[string]string) {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "198.51.100.4:1234"
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(httptest.NewRecorder(), req)
}

func TestMiddlewareRecordsPages(t *testing.T) {
	rec := &recorder{}
	r := newEngine(rec)

	serve(r, http.MethodGet, "/", map[string]string{"User-Agent": "test-agent"})
	serve(r, http.MethodGet, "/content/blogs/p.md", nil)

	assert.Equal(t, []visit{
		{"198.51.100.4", "test-agent", "/"},
		{"198.51.100.4", "", "/content/blogs/p.md"},
	}, rec.visits)
}

func TestMiddlewareSkips(t *testing.T) {
	rec := &recorder{}
	r := newEngine(rec)

	serve(r, http.MethodGet, "/", map[string]string{"DNT": "1"})
	serve(r, http.MethodGet, "/static/site.css", nil)
	serve(r, http.MethodGet, "/content/projects.json", nil)
	serve(r, http.MethodGet, "/missing", nil)
	serve(r, http.MethodPost, "/", nil)

	assert.Empty(t, rec.visits)
}

func TestTracked(t *testing.T) {
	assert.True(t, Tracked("/"))
	assert.True(t, Tracked("/content/blogs/a.md"))
	assert.False(t, Tracked("/content/blogs.json"))
	assert.False(t, Tracked("/admin/api/stats"))
	assert.False(t, Tracked("/wasm/folio.wasm"))
}
