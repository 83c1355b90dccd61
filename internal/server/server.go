// Package server serves the portfolio: the prerendered page, the content
// store, static assets and the admin statistics API.
package server

import (
	"context"
	"crypto/subtle"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/folio/internal/analytics"
	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/dom"
	"github.com/Zachkp/folio/internal/feed"
	"github.com/Zachkp/folio/internal/icons"
	"github.com/Zachkp/folio/internal/markdown"
	"github.com/Zachkp/folio/internal/page"
)

// adminCookie may carry the admin token instead of an Authorization header.
const adminCookie = "admin_token"

//go:embed templates/*.html
var templateFS embed.FS

// Analytics is the visitor tracking backend.
type Analytics interface {
	analytics.Recorder
	Stats(ctx context.Context) (*analytics.Stats, error)
	Cleanup(ctx context.Context) (int64, error)
}

// Options configures a Server.
type Options struct {
	Config config.Config
	// Analytics may be nil, which disables tracking and the admin API.
	Analytics Analytics
	Logger    *zap.Logger
	// Site is the site root holding content/. Defaults to Config.SiteDir.
	Site fs.FS
}

// Server is the HTTP front of the portfolio.
type Server struct {
	cfg    config.Config
	engine *gin.Engine
	stats  Analytics
	source *feed.FSSource
	md     markdown.Renderer
	log    *zap.Logger
	token  string
}

// New builds the routes.
func New(opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Site == nil {
		opts.Site = os.DirFS(opts.Config.SiteDir)
	}
	if opts.Config.GinMode != "" {
		gin.SetMode(opts.Config.GinMode)
	}

	s := &Server{
		cfg:    opts.Config,
		stats:  opts.Analytics,
		source: feed.NewFSSource(opts.Site),
		md:     markdown.New(),
		log:    opts.Logger,
		token:  opts.Config.AdminToken,
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log))
	r.SetHTMLTemplate(tmpl)
	if s.stats != nil {
		r.Use(analytics.Middleware(s.stats))
	}

	r.GET("/", s.index)
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"Title":           s.cfg.SiteTitle,
			"Analytics":       s.stats != nil,
			"RetentionMonths": analytics.RetentionMonths,
		})
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/content/*filepath", s.content)
	r.HEAD("/content/*filepath", s.content)
	r.Static("/static", s.cfg.StaticDir)
	r.Static("/images", s.cfg.ImagesDir)
	r.Static("/wasm", s.cfg.WasmDir)

	if s.stats != nil {
		if err := s.setupAdminRoutes(r); err != nil {
			return nil, err
		}
	}

	s.engine = r
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.log.Info("serving portfolio", zap.String("addr", srv.Addr), zap.String("site", s.cfg.SiteDir))

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// layout is the server-side copy of the page's DOM contract.
func layout() *dom.Tree {
	tree := dom.NewTree()
	tree.Add(dom.MainContent)
	tree.Add(dom.ProjectGrid)
	tree.Add(dom.BlogGrid)
	tree.Add(dom.PostError, dom.HiddenClass)
	tree.Add(dom.PostDetail, dom.HiddenClass)
	tree.Add(dom.PostContent)
	return tree
}

// index prerenders the list view by running the viewer against an
// in-memory document.
func (s *Server) index(c *gin.Context) {
	tree := layout()
	p := page.New(tree, page.Options{
		Source:      s.source,
		Markdown:    s.md,
		Icons:       icons.Inline{},
		Images:      s.cfg.Images(),
		Policy:      s.cfg.Policy(),
		ScrollDelay: s.cfg.ScrollDelay,
		Logger:      s.log,
	})
	p.Start(c.Request.Context())
	p.Wait()

	about := s.cfg.SiteAbout
	if about == "" {
		about = content.About
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":         s.cfg.SiteTitle,
		"About":         about,
		"Projects":      template.HTML(tree.Node(dom.ProjectGrid).HTML()),
		"Blogs":         template.HTML(tree.Node(dom.BlogGrid).HTML()),
		"ListVisible":   !tree.Node(dom.MainContent).Hidden(),
		"ScrollDelay":   s.cfg.ScrollDelay.String(),
		"FallbackImage": s.cfg.Images().FallbackURL(),
	})
}

// content serves feeds and post bodies. Responses are never cached so a
// reopened post is always fetched again.
func (s *Server) content(c *gin.Context) {
	rel := strings.TrimPrefix(c.Param("filepath"), "/")
	name := path.Join("content", rel)
	if !strings.HasPrefix(name, "content/") {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	body, err := s.source.Fetch(c.Request.Context(), name)
	if err != nil {
		var fe *feed.Error
		status := http.StatusInternalServerError
		if errors.As(err, &fe) {
			switch fe.Kind {
			case feed.KindHTTP:
				status = fe.Status
			case feed.KindInvalid:
				status = http.StatusNotFound
			}
		}
		if status >= http.StatusInternalServerError {
			s.log.Warn("serve content", zap.String("path", rel), zap.Error(err))
		}
		c.AbortWithStatus(status)
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, contentType(rel), body)
}

func contentType(name string) string {
	switch ext := path.Ext(name); ext {
	case ".md", ".markdown":
		return "text/markdown; charset=utf-8"
	case ".json":
		return "application/json; charset=utf-8"
	default:
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
		return "text/plain; charset=utf-8"
	}
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

func (s *Server) setupAdminRoutes(r *gin.Engine) error {
	if s.token == "" {
		token, err := analytics.NewToken()
		if err != nil {
			return err
		}
		s.token = token
		if gin.Mode() == gin.DebugMode {
			s.log.Info("generated admin token (dev only)", zap.String("token", token))
		} else {
			s.log.Info("ADMIN_TOKEN not set; generated a random one, admin API is effectively disabled")
		}
	}

	admin := r.Group("/admin")
	admin.Use(s.requireAdmin())

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.stats.Stats(c.Request.Context())
		if err != nil {
			s.log.Error("load admin stats", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.stats.Stats(c.Request.Context())
		if err != nil {
			s.log.Error("export admin stats", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=folio-stats.json")
		c.JSON(http.StatusOK, stats)
	})

	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		n, err := s.stats.Cleanup(c.Request.Context())
		if err != nil {
			s.log.Error("privacy cleanup", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cleanup failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": n})
	})
	return nil
}

func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok {
			token, _ = c.Cookie(adminCookie)
		}
		if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.token)) != 1 {
			s.log.Warn("rejected admin request", zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
