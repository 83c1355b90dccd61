// Package page wires the controllers and renderers to a document and runs
// the page-ready sequence.
package page

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Zachkp/folio/internal/dom"
	"github.com/Zachkp/folio/internal/feed"
	"github.com/Zachkp/folio/internal/icons"
	"github.com/Zachkp/folio/internal/imageref"
	"github.com/Zachkp/folio/internal/markdown"
	"github.com/Zachkp/folio/internal/nav"
	"github.com/Zachkp/folio/internal/render"
	"github.com/Zachkp/folio/internal/view"
)

// Options configures a Page.
type Options struct {
	Source      feed.Source
	Markdown    markdown.Renderer
	Icons       icons.Refresher
	Images      imageref.Resolver
	Policy      render.Policy
	ScrollDelay time.Duration
	Logger      *zap.Logger
}

// FromDocument fills ScrollDelay and Images from the settings attributes
// of the main-content element. Missing or malformed values leave the
// options unchanged.
func (o *Options) FromDocument(doc dom.Document) {
	main, ok := doc.Element(dom.MainContent)
	if !ok {
		return
	}
	if v := main.Attr(dom.ScrollDelayAttr); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			o.ScrollDelay = d
		}
	}
	if v := main.Attr(dom.FallbackImageAttr); v != "" {
		o.Images = imageref.New(v)
	}
}

// Page is one loaded instance of the portfolio page.
type Page struct {
	doc    dom.Document
	View   *view.Controller
	Nav    *nav.Controller
	render *render.Renderer
	icons  icons.Refresher
	log    *zap.Logger

	wg sync.WaitGroup
}

// New builds a page over doc.
func New(doc dom.Document, opts Options) *Page {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Icons == nil {
		opts.Icons = icons.Nop{}
	}
	if opts.ScrollDelay <= 0 {
		opts.ScrollDelay = nav.DefaultScrollDelay
	}

	v := view.New(doc)
	return &Page{
		doc:  doc,
		View: v,
		Nav:  nav.New(doc, v, nav.WithScrollDelay(opts.ScrollDelay)),
		render: render.New(doc, v, render.Config{
			Source:   opts.Source,
			Markdown: opts.Markdown,
			Icons:    opts.Icons,
			Images:   opts.Images,
			Policy:   opts.Policy,
			Logger:   opts.Logger,
		}),
		icons: opts.Icons,
		log:   opts.Logger,
	}
}

// Start runs the page-ready sequence: navigation handlers are bound, the
// list view is shown and both feeds are loaded concurrently. It returns
// without waiting for the loads.
func (p *Page) Start(ctx context.Context) {
	p.Nav.Bind()
	p.View.BindBack()
	p.View.ShowList()

	p.spawn(func() { p.render.LoadProjects(ctx) })
	p.spawn(func() {
		p.render.LoadBlogs(ctx, func(file string) { p.Open(ctx, file) })
	})

	if root, ok := p.doc.Element(dom.MainContent); ok {
		p.icons.Refresh(root)
	}
	p.log.Debug("page started")
}

// Open loads a post in the background, as a card click does.
func (p *Page) Open(ctx context.Context, file string) {
	p.spawn(func() { p.render.OpenPost(ctx, file) })
}

// Wait blocks until every load started so far has finished.
func (p *Page) Wait() {
	p.wg.Wait()
}

func (p *Page) spawn(fn func()) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		fn()
	}()
}
