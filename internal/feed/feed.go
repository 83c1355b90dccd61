package feed

import (
	"context"
	"encoding/json"
	"path"
	"strings"

	"github.com/Zachkp/folio/internal/content"
)

// Projects loads the project feed.
func Projects(ctx context.Context, src Source) ([]content.Project, error) {
	var projects []content.Project
	if err := load(ctx, src, content.ProjectsPath, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Blogs loads the blog feed.
func Blogs(ctx context.Context, src Source) ([]content.BlogSummary, error) {
	var blogs []content.BlogSummary
	if err := load(ctx, src, content.BlogsPath, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

// Body loads the raw markup of the blog post referenced by file.
func Body(ctx context.Context, src Source, file string) (string, error) {
	p, err := BodyPath(file)
	if err != nil {
		return "", err
	}
	body, err := src.Fetch(ctx, p)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// BodyPath maps a blog file reference to its site-relative path. References
// that are absolute or leave the blogs directory are rejected.
func BodyPath(file string) (string, error) {
	if strings.TrimSpace(file) == "" || strings.HasPrefix(file, "/") || strings.Contains(file, `\`) {
		return "", &Error{Kind: KindInvalid, Path: file}
	}
	cleaned := path.Clean(file)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", &Error{Kind: KindInvalid, Path: file}
	}
	return path.Join(content.BlogsDir, cleaned), nil
}

func load(ctx context.Context, src Source, p string, v any) error {
	body, err := src.Fetch(ctx, p)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &Error{Kind: KindParse, Path: p, Err: err}
	}
	return nil
}
