package dom

import (
	"bytes"
	"slices"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Tree is an in-memory Document. Inner HTML assigned to a node is parsed so
// that injected markup can be queried and clicked like static markup.
type Tree struct {
	mu      sync.RWMutex
	roots   []*Node
	scrollX int
	scrollY int
}

// NewTree returns an empty document.
func NewTree() *Tree {
	return &Tree{}
}

// Add appends a top-level element with the given id. An empty id is allowed
// for elements that are only reached through selectors.
func (t *Tree) Add(id string, classes ...string) *Node {
	n := &Node{tag: "div", attrs: map[string]string{}}
	if id != "" {
		n.attrs["id"] = id
	}
	n.classes = append(n.classes, classes...)

	t.mu.Lock()
	t.roots = append(t.roots, n)
	t.mu.Unlock()
	return n
}

// Element implements Document.
func (t *Tree) Element(id string) (Element, bool) {
	if id == "" {
		return nil, false
	}
	var found *Node
	t.walk(func(n *Node) bool {
		if n.ID() == id {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		return nil, false
	}
	return found, true
}

// Node is like Element but returns the concrete node.
func (t *Tree) Node(id string) *Node {
	el, ok := t.Element(id)
	if !ok {
		return nil
	}
	return el.(*Node)
}

// QueryAll implements Document.
func (t *Tree) QueryAll(selector string) []Element {
	var out []Element
	t.walk(func(n *Node) bool {
		if n.matches(selector) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// ScrollTo implements Document.
func (t *Tree) ScrollTo(x, y int) {
	t.mu.Lock()
	t.scrollX, t.scrollY = x, y
	t.mu.Unlock()
}

// Scroll returns the last position passed to ScrollTo.
func (t *Tree) Scroll() (x, y int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.scrollX, t.scrollY
}

func (t *Tree) walk(visit func(*Node) bool) {
	t.mu.RLock()
	roots := slices.Clone(t.roots)
	t.mu.RUnlock()
	for _, r := range roots {
		if !r.walk(visit) {
			return
		}
	}
}

// Node is an element of a Tree.
type Node struct {
	mu       sync.Mutex
	tag      string
	attrs    map[string]string
	classes  []string
	inner    string
	children []*Node
	clicks   []func()
	scrolls  int
}

// ID implements Element.
func (n *Node) ID() string { return n.Attr("id") }

// Tag returns the element name.
func (n *Node) Tag() string { return n.tag }

// Attr implements Element.
func (n *Node) Attr(name string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if name == "class" {
		return strings.Join(n.classes, " ")
	}
	return n.attrs[name]
}

// SetAttr sets an attribute and returns n.
func (n *Node) SetAttr(name, value string) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	if name == "class" {
		n.classes = strings.Fields(value)
		return n
	}
	n.attrs[name] = value
	return n
}

// HTML implements Element.
func (n *Node) HTML() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.inner
}

// SetHTML implements Element. Previously parsed children and their click
// handlers are discarded.
func (n *Node) SetHTML(s string) {
	children := parseChildren(s)
	n.mu.Lock()
	n.inner = s
	n.children = children
	n.mu.Unlock()
}

// AddClass implements Element.
func (n *Node) AddClass(names ...string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, name := range names {
		if !slices.Contains(n.classes, name) {
			n.classes = append(n.classes, name)
		}
	}
}

// RemoveClass implements Element.
func (n *Node) RemoveClass(names ...string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.classes = slices.DeleteFunc(n.classes, func(c string) bool {
		return slices.Contains(names, c)
	})
}

// HasClass implements Element.
func (n *Node) HasClass(name string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Contains(n.classes, name)
}

// Hidden reports whether the hidden class is set.
func (n *Node) Hidden() bool { return n.HasClass(HiddenClass) }

// QueryAll implements Element.
func (n *Node) QueryAll(selector string) []Element {
	var out []Element
	for _, c := range n.snapshotChildren() {
		c.walk(func(d *Node) bool {
			if d.matches(selector) {
				out = append(out, d)
			}
			return true
		})
	}
	return out
}

// OnClick implements Element.
func (n *Node) OnClick(fn func()) {
	n.mu.Lock()
	n.clicks = append(n.clicks, fn)
	n.mu.Unlock()
}

// Click runs the registered click handlers in registration order.
func (n *Node) Click() {
	n.mu.Lock()
	handlers := slices.Clone(n.clicks)
	n.mu.Unlock()
	for _, fn := range handlers {
		fn()
	}
}

// ScrollIntoView implements Element.
func (n *Node) ScrollIntoView() {
	n.mu.Lock()
	n.scrolls++
	n.mu.Unlock()
}

// Scrolls returns how many times the node was scrolled into view.
func (n *Node) Scrolls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.scrolls
}

func (n *Node) snapshotChildren() []*Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.children)
}

func (n *Node) walk(visit func(*Node) bool) bool {
	if !visit(n) {
		return false
	}
	for _, c := range n.snapshotChildren() {
		if !c.walk(visit) {
			return false
		}
	}
	return true
}

func (n *Node) matches(selector string) bool {
	switch {
	case strings.HasPrefix(selector, "."):
		return n.HasClass(selector[1:])
	case strings.HasPrefix(selector, "[") && strings.HasSuffix(selector, "]"):
		name, want, hasValue := strings.Cut(selector[1:len(selector)-1], "=")
		n.mu.Lock()
		got, ok := n.attrs[name]
		n.mu.Unlock()
		if !hasValue {
			return ok
		}
		return ok && got == strings.Trim(want, `"'`)
	default:
		return false
	}
}

func parseChildren(s string) []*Node {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(s), ctx)
	if err != nil {
		return nil
	}
	var out []*Node
	for _, hn := range nodes {
		if hn.Type == html.ElementNode {
			out = append(out, fromHTML(hn))
		}
	}
	return out
}

func fromHTML(hn *html.Node) *Node {
	n := &Node{tag: hn.Data, attrs: map[string]string{}}
	for _, a := range hn.Attr {
		if a.Key == "class" {
			n.classes = strings.Fields(a.Val)
			continue
		}
		n.attrs[a.Key] = a.Val
	}
	var buf bytes.Buffer
	for c := hn.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
		if c.Type == html.ElementNode {
			n.children = append(n.children, fromHTML(c))
		}
	}
	n.inner = buf.String()
	return n
}
