// Package dom is the page contract the viewer is written against. The
// browser build adapts it to the real document; Tree is an in-memory
// implementation used for server-side prerendering and tests.
package dom

// Element ids the page must expose.
const (
	ProjectGrid   = "project-grid"
	BlogGrid      = "blog-grid"
	PostDetail    = "blog-post-detail"
	PostContent   = "blog-post-content"
	PostError     = "blog-post-error"
	MainContent   = "main-content"
	MobileToggle  = "mobile-nav-toggle"
	MobileLinks   = "mobile-nav-links"
	MenuIcon      = "menu-icon"
	CloseIcon     = "close-icon"
	HiddenClass   = "hidden"
	PostFileAttr  = "data-post-file"
	ActionAttr    = "data-action"
	NavLinkClass  = "nav-link"
	MobLinkClass  = "mobile-link"
	ShowListValue = "show-list"
)

// Settings the server writes onto the main-content element for the browser
// build.
const (
	ScrollDelayAttr   = "data-scroll-delay"
	FallbackImageAttr = "data-fallback-image"
)

// Element is a node of the page.
type Element interface {
	ID() string
	Attr(name string) string
	HTML() string
	SetHTML(html string)
	AddClass(names ...string)
	RemoveClass(names ...string)
	HasClass(name string) bool
	// QueryAll returns descendants matching a ".class" or "[attr]" selector.
	QueryAll(selector string) []Element
	OnClick(fn func())
	ScrollIntoView()
}

// Document is the page root.
type Document interface {
	// Element returns the element with the given id.
	Element(id string) (Element, bool)
	QueryAll(selector string) []Element
	ScrollTo(x, y int)
}

// Hide adds the hidden class to the element with id, if present.
func Hide(doc Document, id string) {
	if el, ok := doc.Element(id); ok {
		el.AddClass(HiddenClass)
	}
}

// Show removes the hidden class from the element with id, if present.
func Show(doc Document, id string) {
	if el, ok := doc.Element(id); ok {
		el.RemoveClass(HiddenClass)
	}
}
