package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSite(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
	return dir
}

func runCheck(t *testing.T, dir string) (string, error) {
	t.Helper()
	t.Setenv("SITE_DIR", dir)
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"check"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestCheckCleanSite(t *testing.T) {
	dir := writeSite(t, map[string]string{
		"content/projects.json":  `[{"title": "Folio", "githubUrl": "https://github.com/Zachkp/folio"}]`,
		"content/blogs.json":     `[{"title": "Hello", "file": "hello.md"}]`,
		"content/blogs/hello.md": "# Hello",
	})

	out, err := runCheck(t, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "1 projects, 1 posts, 0 findings")
}

func TestCheckFailsOnMissingPost(t *testing.T) {
	dir := writeSite(t, map[string]string{
		"content/projects.json": `[{"title": "Folio", "githubUrl": "https://github.com/Zachkp/folio"}]`,
		"content/blogs.json":    `[{"title": "Gone", "file": "gone.md"}]`,
	})

	out, err := runCheck(t, dir)
	assert.ErrorIs(t, err, errCheckFailed)
	assert.Contains(t, out, `failure content/blogs.json[0]: post "gone.md"`)
}
