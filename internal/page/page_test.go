package page

import (
	"context"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/dom"
	"github.com/Zachkp/folio/internal/feed"
	"github.com/Zachkp/folio/internal/icons"
	"github.com/Zachkp/folio/internal/render"
	"github.com/Zachkp/folio/internal/view"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func layout() *dom.Tree {
	tree := dom.NewTree()
	tree.Add(dom.MainContent)
	tree.Add(dom.ProjectGrid)
	tree.Add(dom.BlogGrid)
	tree.Add(dom.PostError, dom.HiddenClass)
	tree.Add(dom.PostDetail, dom.HiddenClass)
	tree.Add(dom.PostContent)
	tree.Add("").SetAttr(dom.ActionAttr, dom.ShowListValue)
	tree.Add(dom.MobileToggle)
	tree.Add(dom.MobileLinks, "max-h-0")
	tree.Add(dom.MenuIcon)
	tree.Add(dom.CloseIcon, dom.HiddenClass)
	return tree
}

func site(files map[string]string) feed.Source {
	fsys := fstest.MapFS{}
	for name, data := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(data)}
	}
	return feed.NewFSSource(fsys)
}

func TestStartLoadsBothFeeds(t *testing.T) {
	tree := layout()
	p := New(tree, Options{
		Source: site(map[string]string{
			content.ProjectsPath: `[{"title":"A","description":"d","githubUrl":"g","liveUrl":"l"}]`,
			content.BlogsPath:    `[{"title":"T","date":"D","summary":"S","file":"p.md"}]`,
			"content/blogs/p.md": "# Post\n",
		}),
		Icons: icons.Inline{},
	})

	p.Start(context.Background())
	p.Wait()

	assert.Equal(t, view.List, p.View.Mode())
	assert.Len(t, tree.QueryAll(".project-card"), 1)
	assert.Len(t, tree.QueryAll(".blog-card"), 1)
	assert.Contains(t, tree.Node(dom.ProjectGrid).HTML(), "lucide-github")
}

func TestClickingCardOpensDetail(t *testing.T) {
	tree := layout()
	p := New(tree, Options{
		Source: site(map[string]string{
			content.ProjectsPath: `[]`,
			content.BlogsPath:    `[{"title":"T","date":"D","summary":"S","file":"p.md"}]`,
			"content/blogs/p.md": "# Post\n\nHello.",
		}),
	})
	p.Start(context.Background())
	p.Wait()

	cards := tree.QueryAll(".blog-card")
	require.Len(t, cards, 1)
	cards[0].(*dom.Node).Click()
	p.Wait()

	assert.Equal(t, view.Detail, p.View.Mode())
	assert.False(t, tree.Node(dom.PostDetail).Hidden())
	assert.True(t, tree.Node(dom.MainContent).Hidden())
	assert.Contains(t, tree.Node(dom.PostContent).HTML(), "Hello.")

	back := tree.QueryAll(`[data-action="show-list"]`)
	require.Len(t, back, 1)
	back[0].(*dom.Node).Click()
	assert.Equal(t, view.List, p.View.Mode())
}

func TestFailuresNeverBreakThePage(t *testing.T) {
	tree := layout()
	p := New(tree, Options{
		Source: site(map[string]string{
			content.BlogsPath: `[{"title":"T","date":"D","summary":"S","file":"gone.md"}]`,
		}),
	})
	p.Start(context.Background())
	p.Wait()

	assert.Contains(t, tree.Node(dom.ProjectGrid).HTML(), content.PlaceholderProjects()[0].Title)

	tree.QueryAll(".blog-card")[0].(*dom.Node).Click()
	p.Wait()

	assert.Equal(t, view.List, p.View.Mode())
	assert.False(t, tree.Node(dom.MainContent).Hidden())
	assert.False(t, tree.Node(dom.PostError).Hidden())
}

func TestEmptyOptionsUseDefaultPolicy(t *testing.T) {
	tree := layout()
	p := New(tree, Options{Source: site(nil)})
	p.Start(context.Background())
	p.Wait()

	assert.Contains(t, tree.Node(dom.ProjectGrid).HTML(), content.PlaceholderProjects()[0].Title)
	assert.Empty(t, tree.Node(dom.BlogGrid).HTML())

	p.Open(context.Background(), "missing.md")
	p.Wait()

	assert.Equal(t, view.List, p.View.Mode())
	assert.False(t, tree.Node(dom.PostError).Hidden())
	assert.Contains(t, tree.Node(dom.PostError).HTML(), render.PostFailMessage)
}

func TestOptionsFromDocument(t *testing.T) {
	tree := layout()
	tree.Node(dom.MainContent).
		SetAttr(dom.ScrollDelayAttr, "250ms").
		SetAttr(dom.FallbackImageAttr, "/images/fallback.png")

	var opts Options
	opts.FromDocument(tree)
	assert.Equal(t, 250*time.Millisecond, opts.ScrollDelay)
	assert.Equal(t, "/images/fallback.png", opts.Images.Resolve(""))

	tree = layout()
	tree.Node(dom.MainContent).SetAttr(dom.ScrollDelayAttr, "soon")
	opts = Options{ScrollDelay: time.Second}
	opts.FromDocument(tree)
	assert.Equal(t, time.Second, opts.ScrollDelay)
	assert.Empty(t, opts.Images.Fallback)
}

func TestNavigationFromDetail(t *testing.T) {
	tree := layout()
	link := tree.Add("", dom.NavLinkClass).SetAttr("href", "#projects")
	target := tree.Add("projects")

	p := New(tree, Options{Source: site(nil), ScrollDelay: time.Millisecond})
	p.Start(context.Background())
	p.Wait()

	p.View.ShowDetail()
	link.Click()
	assert.Equal(t, view.List, p.View.Mode())
	assert.Eventually(t, func() bool { return target.Scrolls() == 1 }, time.Second, 5*time.Millisecond)
}
