// Package markdown turns blog bodies into HTML fragments.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts lightweight markup to an HTML fragment.
type Renderer interface {
	Render(src string) (string, error)
}

// Goldmark renders GitHub-flavoured markdown with highlighted code blocks.
type Goldmark struct {
	md goldmark.Markdown
}

// New returns a Goldmark renderer. Raw HTML in posts is passed through;
// posts are authored by the site owner.
func New() *Goldmark {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("monokai"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	return &Goldmark{md: md}
}

// Render implements Renderer. A leading frontmatter block is dropped.
func (g *Goldmark) Render(src string) (string, error) {
	body := StripFrontmatter(src)
	var buf bytes.Buffer
	if err := g.md.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

// StripFrontmatter returns src without its YAML or TOML frontmatter. Text
// without a well-formed block is returned unchanged.
func StripFrontmatter(src string) string {
	if !strings.HasPrefix(src, "---") && !strings.HasPrefix(src, "+++") {
		return src
	}
	var meta map[string]any
	rest, err := frontmatter.Parse(strings.NewReader(src), &meta)
	if err != nil {
		return src
	}
	return string(rest)
}
