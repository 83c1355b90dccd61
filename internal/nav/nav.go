// Package nav drives the mobile menu and in-page navigation links.
package nav

import (
	"strings"
	"sync"
	"time"

	"github.com/Zachkp/folio/internal/dom"
)

// DefaultScrollDelay leaves time for the list view to become visible and
// reflow before scrolling to the target.
const DefaultScrollDelay = 100 * time.Millisecond

const (
	collapsedClass = "max-h-0"
	expandedClass  = "max-h-96"
)

// Lister reveals the list view.
type Lister interface {
	ShowList()
}

// Controller owns the mobile menu state.
type Controller struct {
	doc   dom.Document
	view  Lister
	delay time.Duration
	after func(time.Duration, func())

	mu       sync.Mutex
	expanded bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithScrollDelay overrides DefaultScrollDelay.
func WithScrollDelay(d time.Duration) Option {
	return func(c *Controller) { c.delay = d }
}

// WithAfterFunc replaces time.AfterFunc for scheduling the delayed scroll.
func WithAfterFunc(after func(time.Duration, func())) Option {
	return func(c *Controller) { c.after = after }
}

// New returns a collapsed controller.
func New(doc dom.Document, view Lister, opts ...Option) *Controller {
	c := &Controller{
		doc:   doc,
		view:  view,
		delay: DefaultScrollDelay,
		after: func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Expanded reports whether the mobile menu is open.
func (c *Controller) Expanded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expanded
}

// Toggle opens a closed menu and closes an open one.
func (c *Controller) Toggle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expanded = !c.expanded

	links, ok := c.doc.Element(dom.MobileLinks)
	if !ok {
		return
	}
	if c.expanded {
		links.RemoveClass(collapsedClass)
		links.AddClass(expandedClass)
		dom.Hide(c.doc, dom.MenuIcon)
		dom.Show(c.doc, dom.CloseIcon)
		return
	}
	links.RemoveClass(expandedClass)
	links.AddClass(collapsedClass)
	dom.Show(c.doc, dom.MenuIcon)
	dom.Hide(c.doc, dom.CloseIcon)
}

// Navigate returns to the list view and, after the scroll delay, scrolls
// the element named by an in-page href ("#projects") into view.
func (c *Controller) Navigate(href string) {
	c.view.ShowList()
	id, ok := strings.CutPrefix(href, "#")
	if !ok || id == "" {
		return
	}
	c.after(c.delay, func() {
		if el, ok := c.doc.Element(id); ok {
			el.ScrollIntoView()
		}
	})
}

// Bind registers the click handlers: the toggle button, mobile links
// closing the menu, and in-page links navigating.
func (c *Controller) Bind() {
	if btn, ok := c.doc.Element(dom.MobileToggle); ok {
		btn.OnClick(c.Toggle)
	}
	for _, link := range c.doc.QueryAll("." + dom.MobLinkClass) {
		link.OnClick(c.Toggle)
	}
	for _, cls := range []string{dom.NavLinkClass, dom.MobLinkClass} {
		for _, link := range c.doc.QueryAll("." + cls) {
			href := link.Attr("href")
			if !strings.HasPrefix(href, "#") {
				continue
			}
			link.OnClick(func() { c.Navigate(href) })
		}
	}
}
