// Package audit checks a site's content store the way the viewer will
// read it, so broken feeds and posts are caught before a visitor sees them.
package audit

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/feed"
	"github.com/Zachkp/folio/internal/imageref"
	"github.com/Zachkp/folio/internal/markdown"
)

// DefaultConcurrency bounds parallel post fetches.
const DefaultConcurrency = 4

// Severity grades a Finding.
type Severity int

const (
	// Warning marks content that renders with a fallback.
	Warning Severity = iota
	// Failure marks content the viewer cannot render.
	Failure
)

func (s Severity) String() string {
	if s == Failure {
		return "failure"
	}
	return "warning"
}

// Finding is one problem in the content store.
type Finding struct {
	Severity Severity
	Path     string
	Message  string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s %s: %s", f.Severity, f.Path, f.Message)
}

// Report is the result of Run.
type Report struct {
	Projects int
	Posts    int
	Findings []Finding
}

// Failed reports whether any finding is a Failure.
func (r *Report) Failed() bool {
	for _, f := range r.Findings {
		if f.Severity == Failure {
			return true
		}
	}
	return false
}

// Options configures Run.
type Options struct {
	Markdown    markdown.Renderer
	Images      imageref.Resolver
	Concurrency int
	Logger      *zap.Logger
}

type auditor struct {
	src    feed.Source
	opts   Options
	mu     sync.Mutex
	report Report
}

// Run loads both feeds and every post body from src. Problems are
// collected into the report; the returned error is only set when ctx is
// done before the audit finishes.
func Run(ctx context.Context, src feed.Source, opts Options) (*Report, error) {
	if opts.Markdown == nil {
		opts.Markdown = markdown.New()
	}
	if opts.Images.Fallback == "" {
		opts.Images = imageref.Default
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	a := &auditor{src: src, opts: opts}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		a.projects(egCtx)
		return nil
	})
	eg.Go(func() error {
		return a.blogs(egCtx)
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(a.report.Findings, func(i, j int) bool {
		return a.report.Findings[i].Path < a.report.Findings[j].Path
	})
	return &a.report, nil
}

func (a *auditor) add(sev Severity, path, format string, args ...any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.report.Findings = append(a.report.Findings, Finding{
		Severity: sev,
		Path:     path,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (a *auditor) projects(ctx context.Context) {
	projects, err := feed.Projects(ctx, a.src)
	if err != nil {
		a.add(Failure, content.ProjectsPath, "%v", err)
		return
	}
	a.mu.Lock()
	a.report.Projects = len(projects)
	a.mu.Unlock()

	if len(projects) == 0 {
		a.add(Warning, content.ProjectsPath, "feed is empty")
	}
	for i, p := range projects {
		where := fmt.Sprintf("%s[%d]", content.ProjectsPath, i)
		if strings.TrimSpace(p.Title) == "" {
			a.add(Warning, where, "missing title")
		}
		if !p.GithubURL.Present() {
			a.add(Warning, where, "missing githubUrl")
		}
		a.image(where, p.ImageURL.String())
	}
}

func (a *auditor) blogs(ctx context.Context) error {
	blogs, err := feed.Blogs(ctx, a.src)
	if err != nil {
		a.add(Failure, content.BlogsPath, "%v", err)
		return nil
	}
	a.mu.Lock()
	a.report.Posts = len(blogs)
	a.mu.Unlock()

	seen := make(map[string]int, len(blogs))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(a.opts.Concurrency)
	for i, b := range blogs {
		where := fmt.Sprintf("%s[%d]", content.BlogsPath, i)
		if strings.TrimSpace(b.Title) == "" {
			a.add(Warning, where, "missing title")
		}
		a.image(where, b.ImageURL.String())
		if prev, ok := seen[b.File]; ok {
			a.add(Warning, where, "file %q already listed at index %d", b.File, prev)
			continue
		}
		seen[b.File] = i

		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			a.post(egCtx, where, b.File)
			return nil
		})
	}
	return eg.Wait()
}

func (a *auditor) post(ctx context.Context, where, file string) {
	body, err := feed.Body(ctx, a.src, file)
	if err != nil {
		a.add(Failure, where, "post %q: %v", file, err)
		return
	}
	if strings.TrimSpace(markdown.StripFrontmatter(body)) == "" {
		a.add(Warning, where, "post %q is empty", file)
	}
	if _, err := a.opts.Markdown.Render(body); err != nil {
		a.add(Failure, where, "post %q: %v", file, err)
		return
	}
	a.opts.Logger.Debug("post ok", zap.String("file", file))
}

func (a *auditor) image(where, candidate string) {
	if candidate == "" {
		return
	}
	if a.opts.Images.Resolve(candidate) != candidate {
		a.add(Warning, where, "image %q will be replaced by the fallback", candidate)
	}
}
