//go:build js && wasm

// Package jsdom adapts the browser document to dom.Document.
package jsdom

import (
	"strings"
	"syscall/js"

	"github.com/Zachkp/folio/internal/dom"
)

// Document wraps window.document.
type Document struct {
	window js.Value
	doc    js.Value
}

// New returns the current page document.
func New() *Document {
	w := js.Global()
	return &Document{window: w, doc: w.Get("document")}
}

// Location returns window.location.href.
func (d *Document) Location() string {
	return d.window.Get("location").Get("href").String()
}

// Element implements dom.Document.
func (d *Document) Element(id string) (dom.Element, bool) {
	v := d.doc.Call("getElementById", id)
	if v.IsNull() || v.IsUndefined() {
		return nil, false
	}
	return &Element{v: v}, true
}

// QueryAll implements dom.Document.
func (d *Document) QueryAll(selector string) []dom.Element {
	return collect(d.doc.Call("querySelectorAll", selector))
}

// ScrollTo implements dom.Document.
func (d *Document) ScrollTo(x, y int) {
	d.window.Call("scrollTo", x, y)
}

// OnReady runs fn once the DOM is parsed.
func (d *Document) OnReady(fn func()) {
	if d.doc.Get("readyState").String() != "loading" {
		fn()
		return
	}
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		cb.Release()
		fn()
		return nil
	})
	d.window.Call("addEventListener", "DOMContentLoaded", cb)
}

// Element wraps an HTMLElement.
type Element struct {
	v js.Value
}

// ID implements dom.Element.
func (e *Element) ID() string { return e.v.Get("id").String() }

// Attr implements dom.Element.
func (e *Element) Attr(name string) string {
	v := e.v.Call("getAttribute", name)
	if v.IsNull() {
		return ""
	}
	return v.String()
}

// HTML implements dom.Element.
func (e *Element) HTML() string { return e.v.Get("innerHTML").String() }

// SetHTML implements dom.Element.
func (e *Element) SetHTML(html string) { e.v.Set("innerHTML", html) }

// AddClass implements dom.Element.
func (e *Element) AddClass(names ...string) {
	e.v.Get("classList").Call("add", toAny(names)...)
}

// RemoveClass implements dom.Element.
func (e *Element) RemoveClass(names ...string) {
	e.v.Get("classList").Call("remove", toAny(names)...)
}

// HasClass implements dom.Element.
func (e *Element) HasClass(name string) bool {
	return e.v.Get("classList").Call("contains", name).Bool()
}

// QueryAll implements dom.Element.
func (e *Element) QueryAll(selector string) []dom.Element {
	return collect(e.v.Call("querySelectorAll", selector))
}

// OnClick implements dom.Element. Clicks on in-page anchors do not perform
// the browser's default jump; the navigation controller scrolls instead.
// The listener lives as long as the element.
func (e *Element) OnClick(fn func()) {
	inPage := strings.HasPrefix(e.Attr("href"), "#")
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		if inPage && len(args) > 0 {
			args[0].Call("preventDefault")
		}
		fn()
		return nil
	})
	e.v.Call("addEventListener", "click", cb)
}

// ScrollIntoView implements dom.Element.
func (e *Element) ScrollIntoView() {
	e.v.Call("scrollIntoView", map[string]any{"behavior": "smooth"})
}

func collect(list js.Value) []dom.Element {
	n := list.Length()
	out := make([]dom.Element, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &Element{v: list.Index(i)})
	}
	return out
}

func toAny(names []string) []any {
	out := make([]any, len(names))
	for i, n := range names {
		out[i] = n
	}
	return out
}
