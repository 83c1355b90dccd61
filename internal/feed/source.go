// Package feed loads the portfolio feeds and blog bodies from a content store.
package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
)

// Source fetches a resource by its site-relative path.
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// HTTPSource fetches resources relative to a base URL.
type HTTPSource struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPSource returns a source resolving paths against base. A nil client
// means http.DefaultClient.
func NewHTTPSource(base string, client *http.Client) (*HTTPSource, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", base, err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("base url %q is not absolute", base)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{base: u, client: client}, nil
}

// URL returns the absolute URL path resolves to.
func (s *HTTPSource) URL(path string) string {
	return s.base.ResolveReference(&url.URL{Path: path}).String()
}

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL(path), nil)
	if err != nil {
		return nil, &Error{Kind: KindInvalid, Path: path, Err: err}
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Kind: KindHTTP, Path: path, Status: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Path: path, Err: err}
	}
	return body, nil
}

// FSSource reads resources from a file system rooted at the site root.
type FSSource struct {
	fsys fs.FS
}

// NewFSSource returns a source backed by fsys.
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

// Fetch implements Source. Missing files map to an HTTP 404 failure so
// callers see the same taxonomy as over the network.
func (s *FSSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Kind: KindNetwork, Path: path, Err: err}
	}
	if !fs.ValidPath(path) {
		return nil, &Error{Kind: KindInvalid, Path: path}
	}
	body, err := fs.ReadFile(s.fsys, path)
	switch {
	case err == nil:
		return body, nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, &Error{Kind: KindHTTP, Path: path, Status: http.StatusNotFound, Err: err}
	case errors.Is(err, fs.ErrPermission):
		return nil, &Error{Kind: KindHTTP, Path: path, Status: http.StatusForbidden, Err: err}
	default:
		return nil, &Error{Kind: KindNetwork, Path: path, Err: err}
	}
}
