package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	out, err := New().Render("# Hello World\n\nSome *text* and a [link](https://example.com).\n")
	require.NoError(t, err)
	assert.Contains(t, out, `<h1 id="hello-world">Hello World</h1>`)
	assert.Contains(t, out, "<em>text</em>")
	assert.Contains(t, out, `<a href="https://example.com">link</a>`)
}

func TestRenderGFMTable(t *testing.T) {
	out, err := New().Render("| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
}

func TestRenderHighlightsCode(t *testing.T) {
	out, err := New().Render("```go\nfunc main() {}\n```\n")
	require.NoError(t, err)
	assert.Contains(t, out, "<pre")
	assert.Contains(t, out, "main")
}

func TestRenderDropsFrontmatter(t *testing.T) {
	out, err := New().Render("---\ntitle: Post\n---\n# Body\n")
	require.NoError(t, err)
	assert.NotContains(t, out, "title: Post")
	assert.Contains(t, out, "Body</h1>")
}

func TestStripFrontmatter(t *testing.T) {
	assert.Equal(t, "# Plain\n", StripFrontmatter("# Plain\n"))

	out := StripFrontmatter("+++\ntitle = \"x\"\n+++\nbody\n")
	assert.Contains(t, out, "body")
	assert.NotContains(t, out, "title")
}
