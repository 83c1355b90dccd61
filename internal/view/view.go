// Package view switches the page between the list of cards and the detail
// view of one post.
package view

import (
	"sync"

	"github.com/Zachkp/folio/internal/dom"
)

// Mode is the visible view.
type Mode int

const (
	// List shows the project and blog sections.
	List Mode = iota
	// Detail shows one blog post.
	Detail
)

func (m Mode) String() string {
	if m == Detail {
		return "detail"
	}
	return "list"
}

// Controller owns the view mode. It is safe for concurrent use.
type Controller struct {
	doc  dom.Document
	mu   sync.Mutex
	mode Mode
}

// New returns a controller in List mode. The document is not touched until
// the first transition.
func New(doc dom.Document) *Controller {
	return &Controller{doc: doc, mode: List}
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// ShowList hides the detail container and reveals the list.
func (c *Controller) ShowList() {
	c.mu.Lock()
	defer c.mu.Unlock()
	dom.Hide(c.doc, dom.PostDetail)
	dom.Show(c.doc, dom.MainContent)
	c.mode = List
}

// ShowDetail hides the list and reveals the detail container.
func (c *Controller) ShowDetail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	dom.Hide(c.doc, dom.MainContent)
	dom.Show(c.doc, dom.PostDetail)
	c.mode = Detail
}

// BindBack wires every [data-action="show-list"] control to ShowList.
func (c *Controller) BindBack() {
	for _, el := range c.doc.QueryAll(`[` + dom.ActionAttr + `="` + dom.ShowListValue + `"]`) {
		el.OnClick(c.ShowList)
	}
}
