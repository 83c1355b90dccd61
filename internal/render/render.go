// Package render fills the page containers from the portfolio feeds.
package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/dom"
	"github.com/Zachkp/folio/internal/feed"
	"github.com/Zachkp/folio/internal/icons"
	"github.com/Zachkp/folio/internal/imageref"
	"github.com/Zachkp/folio/internal/markdown"
)

// Messages shown in place of content.
const (
	NoProjectsMessage   = "No projects found in projects.json"
	NoDescription       = "No description available."
	ProjectsFailMessage = "Projects could not be loaded right now."
	BlogsFailMessage    = "Blog posts could not be loaded right now."
	PostFailMessage     = "Sorry, this post could not be loaded. Please try again later."
)

const summaryLimit = 160

//go:embed templates/*.tmpl
var templateFS embed.FS

var tmpl = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Detailer reveals the detail view.
type Detailer interface {
	ShowDetail()
}

// Config holds the collaborators of a Renderer. Zero values get defaults.
type Config struct {
	Source   feed.Source
	Markdown markdown.Renderer
	Icons    icons.Refresher
	Images   imageref.Resolver
	Policy   Policy
	Logger   *zap.Logger
}

// Renderer loads the feeds and post bodies into the page.
type Renderer struct {
	doc    dom.Document
	view   Detailer
	src    feed.Source
	md     markdown.Renderer
	icons  icons.Refresher
	images imageref.Resolver
	policy Policy
	log    *zap.Logger
}

// New returns a Renderer writing into doc.
func New(doc dom.Document, view Detailer, cfg Config) *Renderer {
	r := &Renderer{
		doc:    doc,
		view:   view,
		src:    cfg.Source,
		md:     cfg.Markdown,
		icons:  cfg.Icons,
		images: cfg.Images,
		policy: cfg.Policy,
		log:    cfg.Logger,
	}
	if r.md == nil {
		r.md = markdown.New()
	}
	if r.icons == nil {
		r.icons = icons.Nop{}
	}
	if r.images.Fallback == "" {
		r.images = imageref.Default
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	return r
}

type projectCard struct {
	Title       string
	Description string
	Image       string
	Fallback    string
	Source      string
	Demo        string
}

type blogCard struct {
	Title    string
	Date     string
	Summary  string
	Image    string
	Fallback string
	File     string
}

// LoadProjects fills the project grid. A failed feed is replaced by the
// placeholder projects unless the policy says otherwise.
func (r *Renderer) LoadProjects(ctx context.Context) {
	grid, ok := r.doc.Element(dom.ProjectGrid)
	if !ok {
		return
	}

	projects, err := feed.Projects(ctx, r.src)
	if err != nil {
		r.log.Warn("could not load projects feed",
			zap.String("path", content.ProjectsPath),
			zap.Stringer("kind", feed.KindOf(err)),
			zap.Error(err))
		if !r.policy.projectFallback() {
			r.setError(grid, ProjectsFailMessage)
			return
		}
		projects = content.PlaceholderProjects()
	}
	r.renderProjects(grid, projects)
}

func (r *Renderer) renderProjects(grid dom.Element, projects []content.Project) {
	if len(projects) == 0 {
		r.execute(grid, "no-projects", NoProjectsMessage)
		return
	}

	cards := make([]projectCard, 0, len(projects))
	for _, p := range projects {
		card := projectCard{
			Title:       p.Title,
			Description: p.Description.String(),
			Image:       r.images.Resolve(p.ImageURL.String()),
			Fallback:    r.images.FallbackURL(),
			Source:      p.GithubURL.String(),
			Demo:        p.LiveURL.String(),
		}
		if card.Description == "" {
			card.Description = NoDescription
		}
		if card.Source == "" {
			card.Source = "#"
		}
		cards = append(cards, card)
	}
	if r.execute(grid, "projects", cards) {
		r.icons.Refresh(grid)
	}
}

// LoadBlogs fills the blog grid and wires every card to open. A failed
// feed leaves the grid untouched unless the policy makes it visible.
func (r *Renderer) LoadBlogs(ctx context.Context, open func(file string)) {
	grid, ok := r.doc.Element(dom.BlogGrid)
	if !ok {
		return
	}

	blogs, err := feed.Blogs(ctx, r.src)
	if err != nil {
		r.log.Warn("could not load blogs feed",
			zap.String("path", content.BlogsPath),
			zap.Stringer("kind", feed.KindOf(err)),
			zap.Error(err))
		if r.policy.blogFailure() == Visible {
			r.setError(grid, BlogsFailMessage)
		}
		return
	}

	cards := make([]blogCard, 0, len(blogs))
	for _, b := range blogs {
		cards = append(cards, blogCard{
			Title:    b.Title,
			Date:     b.Date,
			Summary:  truncate(b.Summary, summaryLimit),
			Image:    r.images.Resolve(b.ImageURL.String()),
			Fallback: r.images.FallbackURL(),
			File:     b.File,
		})
	}
	if !r.execute(grid, "blogs", cards) {
		return
	}
	r.icons.Refresh(grid)

	if open == nil {
		return
	}
	for _, card := range grid.QueryAll("[" + dom.PostFileAttr + "]") {
		file := card.Attr(dom.PostFileAttr)
		card.OnClick(func() { open(file) })
	}
}

// OpenPost loads the body of one post into the detail view and switches
// to it. On failure the current view stays and, by default, an error panel
// is shown. It reports whether the post was opened.
func (r *Renderer) OpenPost(ctx context.Context, file string) bool {
	if err := r.openPost(ctx, file); err != nil {
		r.log.Error("error loading blog post",
			zap.String("file", file),
			zap.Stringer("kind", feed.KindOf(err)),
			zap.Error(err))
		if r.policy.postFailure() == Visible {
			if panel, ok := r.doc.Element(dom.PostError); ok {
				r.setError(panel, PostFailMessage)
				panel.RemoveClass(dom.HiddenClass)
			}
		}
		return false
	}
	return true
}

func (r *Renderer) openPost(ctx context.Context, file string) error {
	area, ok := r.doc.Element(dom.PostContent)
	if !ok {
		return fmt.Errorf("page has no #%s container", dom.PostContent)
	}
	body, err := feed.Body(ctx, r.src, file)
	if err != nil {
		return err
	}
	html, err := r.md.Render(body)
	if err != nil {
		return &feed.Error{Kind: feed.KindParse, Path: file, Err: err}
	}

	area.SetHTML(html)
	if panel, ok := r.doc.Element(dom.PostError); ok {
		panel.SetHTML("")
		panel.AddClass(dom.HiddenClass)
	}
	r.view.ShowDetail()
	r.doc.ScrollTo(0, 0)
	return nil
}

func (r *Renderer) setError(el dom.Element, msg string) {
	r.execute(el, "error-panel", msg)
}

func (r *Renderer) execute(el dom.Element, name string, data any) bool {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		r.log.Error("render template", zap.String("template", name), zap.Error(err))
		return false
	}
	el.SetHTML(buf.String())
	return true
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "…"
}
