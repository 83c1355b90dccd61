package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeElementAndClasses(t *testing.T) {
	tree := NewTree()
	tree.Add(MainContent)
	tree.Add(PostDetail, HiddenClass)

	main := tree.Node(MainContent)
	require.NotNil(t, main)
	assert.False(t, main.Hidden())
	assert.True(t, tree.Node(PostDetail).Hidden())

	Hide(tree, MainContent)
	Hide(tree, MainContent)
	assert.True(t, main.Hidden())
	assert.Equal(t, "hidden", main.Attr("class"))

	Show(tree, MainContent)
	assert.False(t, main.Hidden())

	Show(tree, "missing")
	_, ok := tree.Element("missing")
	assert.False(t, ok)
	assert.Nil(t, tree.Node(""))
}

func TestTreeInjectedMarkupIsQueryable(t *testing.T) {
	tree := NewTree()
	grid := tree.Add(BlogGrid)

	grid.SetHTML(`<article class="blog-card" data-post-file="a.md"><h3 id="title-a">A</h3></article>
<article class="blog-card" data-post-file="b.md"><h3>B</h3></article>`)

	cards := grid.QueryAll("[" + PostFileAttr + "]")
	require.Len(t, cards, 2)
	assert.Equal(t, "a.md", cards[0].Attr(PostFileAttr))
	assert.Equal(t, "b.md", cards[1].Attr(PostFileAttr))
	assert.True(t, cards[0].HasClass("blog-card"))
	assert.Contains(t, cards[0].HTML(), "<h3")

	title, ok := tree.Element("title-a")
	require.True(t, ok)
	assert.Equal(t, "A", title.HTML())

	assert.Len(t, tree.QueryAll(".blog-card"), 2)
	assert.Len(t, tree.QueryAll(`[data-post-file="b.md"]`), 1)
	assert.Empty(t, tree.QueryAll("article"))

	grid.SetHTML("")
	assert.Empty(t, grid.QueryAll(".blog-card"))
}

func TestTreeClickAndScroll(t *testing.T) {
	tree := NewTree()
	link := tree.Add("", NavLinkClass).SetAttr("href", "#projects")
	target := tree.Add("projects")

	var clicks int
	link.OnClick(func() { clicks++ })
	link.OnClick(func() { clicks += 10 })
	link.Click()
	assert.Equal(t, 11, clicks)
	assert.Equal(t, "#projects", link.Attr("href"))

	target.ScrollIntoView()
	assert.Equal(t, 1, target.Scrolls())

	tree.ScrollTo(0, 120)
	x, y := tree.Scroll()
	assert.Equal(t, 0, x)
	assert.Equal(t, 120, y)
}

func TestNodeSetClassAttr(t *testing.T) {
	n := NewTree().Add("x")
	n.SetAttr("class", "a b")
	assert.True(t, n.HasClass("a"))
	n.RemoveClass("a", "missing")
	assert.Equal(t, "b", n.Attr("class"))
	assert.Equal(t, "div", n.Tag())
}
