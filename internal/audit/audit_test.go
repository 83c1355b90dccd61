package audit

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Zachkp/folio/internal/feed"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func run(t *testing.T, fsys fstest.MapFS) *Report {
	t.Helper()
	report, err := Run(context.Background(), feed.NewFSSource(fsys), Options{Concurrency: 2})
	require.NoError(t, err)
	return report
}

func TestRunCleanSite(t *testing.T) {
	report := run(t, fstest.MapFS{
		"content/projects.json": {Data: []byte(`[{"title": "Folio", "githubUrl": "https://github.com/Zachkp/folio"}]`)},
		"content/blogs.json": {Data: []byte(`[
			{"title": "One", "file": "one.md"},
			{"title": "Two", "file": "two.md"}
		]`)},
		"content/blogs/one.md": {Data: []byte("# One")},
		"content/blogs/two.md": {Data: []byte("---\ntitle: Two\n---\n# Two")},
	})

	assert.Equal(t, 1, report.Projects)
	assert.Equal(t, 2, report.Posts)
	assert.Empty(t, report.Findings)
	assert.False(t, report.Failed())
}

func TestRunReportsProblems(t *testing.T) {
	report := run(t, fstest.MapFS{
		"content/projects.json": {Data: []byte(`[{"title": "", "imageUrl": "https://placehold.co/600x400"}]`)},
		"content/blogs.json": {Data: []byte(`[
			{"title": "Missing", "file": "missing.md"},
			{"title": "Escape", "file": "../secret.md"},
			{"title": "Dup", "file": "ok.md"},
			{"title": "Dup again", "file": "ok.md"}
		]`)},
		"content/blogs/ok.md": {Data: []byte("")},
	})

	require.True(t, report.Failed())

	var failures, warnings []string
	for _, f := range report.Findings {
		if f.Severity == Failure {
			failures = append(failures, f.Path)
		} else {
			warnings = append(warnings, f.Path+": "+f.Message)
		}
	}
	assert.ElementsMatch(t, []string{"content/blogs.json[0]", "content/blogs.json[1]"}, failures)
	assert.Contains(t, warnings, "content/projects.json[0]: missing title")
	assert.Contains(t, warnings, "content/projects.json[0]: missing githubUrl")
	assert.Contains(t, warnings, `content/projects.json[0]: image "https://placehold.co/600x400" will be replaced by the fallback`)
	assert.Contains(t, warnings, `content/blogs.json[2]: post "ok.md" is empty`)
	assert.Contains(t, warnings, `content/blogs.json[3]: file "ok.md" already listed at index 2`)
}

func TestRunMissingFeeds(t *testing.T) {
	report := run(t, fstest.MapFS{})

	require.Len(t, report.Findings, 2)
	assert.Equal(t, "content/blogs.json", report.Findings[0].Path)
	assert.Equal(t, "content/projects.json", report.Findings[1].Path)
	assert.True(t, report.Failed())
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, feed.NewFSSource(fstest.MapFS{}), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFindingString(t *testing.T) {
	f := Finding{Severity: Failure, Path: "content/blogs.json", Message: "boom"}
	assert.Equal(t, "failure content/blogs.json: boom", f.String())
}
