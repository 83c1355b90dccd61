// Package icons materializes icon placeholders (<i data-lucide="name">)
// after markup has been injected into the page.
package icons

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/Zachkp/folio/internal/dom"
)

// Refresher is invoked with a container after new icon placeholders were
// inserted into it.
type Refresher interface {
	Refresh(el dom.Element)
}

// Nop ignores refresh requests.
type Nop struct{}

// Refresh implements Refresher.
func (Nop) Refresh(dom.Element) {}

// Func adapts a function to Refresher.
type Func func(el dom.Element)

// Refresh implements Refresher.
func (f Func) Refresh(el dom.Element) { f(el) }

const attr = "data-lucide"

// glyphs holds the inner SVG markup of the icons the viewer uses.
var glyphs = map[string]string{
	"arrow-right":   `<path d="M5 12h14"></path><path d="m12 5 7 7-7 7"></path>`,
	"external-link": `<path d="M15 3h6v6"></path><path d="M10 14 21 3"></path><path d="M18 13v6a2 2 0 0 1-2 2H5a2 2 0 0 1-2-2V8a2 2 0 0 1 2-2h6"></path>`,
	"github":        `<path d="M15 22v-4a4.8 4.8 0 0 0-1-3.5c3 0 6-2 6-5.5.08-1.25-.27-2.48-1-3.5.28-1.15.28-2.35 0-3.5 0 0-1 0-3 1.5-2.64-.5-5.36-.5-8 0C6 2 5 2 5 2c-.3 1.15-.3 2.35 0 3.5A5.403 5.403 0 0 0 4 9c0 3.5 3 5.5 6 5.5-.39.49-.68 1.05-.85 1.65-.17.6-.22 1.23-.15 1.85v4"></path><path d="M9 18c-4.51 2-5-2-7-2"></path>`,
	"menu":          `<line x1="4" x2="20" y1="12" y2="12"></line><line x1="4" x2="20" y1="6" y2="6"></line><line x1="4" x2="20" y1="18" y2="18"></line>`,
	"x":             `<path d="M18 6 6 18"></path><path d="m6 6 12 12"></path>`,
}

// Inline replaces known placeholders with inline SVG so icons show without
// the client-side icon bundle. Unknown names are left untouched.
type Inline struct{}

// Refresh implements Refresher.
func (Inline) Refresh(el dom.Element) {
	out, changed, err := InlineHTML(el.HTML())
	if err != nil || !changed {
		return
	}
	el.SetHTML(out)
}

// InlineHTML rewrites the placeholders found in an HTML fragment.
func InlineHTML(fragment string) (string, bool, error) {
	if !strings.Contains(fragment, attr) {
		return fragment, false, nil
	}
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", false, fmt.Errorf("parse fragment: %w", err)
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}

	var placeholders []*html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.I {
			if _, ok := glyphs[attrValue(n, attr)]; ok {
				placeholders = append(placeholders, n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(body)
	if len(placeholders) == 0 {
		return fragment, false, nil
	}

	for _, p := range placeholders {
		svg, err := svgFor(p)
		if err != nil {
			return "", false, err
		}
		p.Parent.InsertBefore(svg, p)
		p.Parent.RemoveChild(p)
	}

	var buf bytes.Buffer
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", false, fmt.Errorf("render fragment: %w", err)
		}
	}
	return buf.String(), true, nil
}

func svgFor(placeholder *html.Node) (*html.Node, error) {
	name := attrValue(placeholder, attr)
	class := strings.TrimSpace("lucide lucide-" + name + " " + attrValue(placeholder, "class"))
	markup := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" class="%s">%s</svg>`,
		html.EscapeString(class), glyphs[name])

	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil || len(nodes) != 1 {
		return nil, fmt.Errorf("build icon %q: %w", name, err)
	}
	return nodes[0], nil
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
