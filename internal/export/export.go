// Package export pre-renders every published post to static HTML.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"

	"github.com/a-h/templ"
	"postpage/internal/posts"
	"postpage/internal/staticgen"
)

var errMissingDependency = errors.New("export: missing dependency")

// Writer stores one rendered page under a slash-separated key such as
// "posts/hello-world/index.html".
type Writer interface {
	WriteFile(ctx context.Context, key string, body []byte) error
}

type Renderer func(post posts.Post) templ.Component

type Exporter struct {
	source staticgen.Source
	writer Writer
	render Renderer
	logger *slog.Logger
}

func New(source staticgen.Source, writer Writer, render Renderer, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		source: source,
		writer: writer,
		render: render,
		logger: logger,
	}
}

// Run writes one page per published slug and returns the number written.
// The first error stops the export.
func (e *Exporter) Run(ctx context.Context) (int, error) {
	if e.source == nil || e.writer == nil || e.render == nil {
		return 0, errMissingDependency
	}

	result, err := staticgen.Paths(ctx, e.source)
	if err != nil {
		return 0, err
	}
	for _, slug := range result.Rejected {
		e.logger.Warn("skipped unroutable slug", slog.String("slug", slug))
	}

	written := 0
	for _, params := range result.Paths {
		post, err := staticgen.Props(ctx, e.source, params)
		if err != nil {
			return written, err
		}

		var buf bytes.Buffer
		if err := e.render(*post).Render(ctx, &buf); err != nil {
			return written, fmt.Errorf("render %q: %w", params.Slug, err)
		}

		key := PageKey(params.Slug)
		if err := e.writer.WriteFile(ctx, key, buf.Bytes()); err != nil {
			return written, fmt.Errorf("write %q: %w", key, err)
		}

		written++
		e.logger.Debug("exported post", slog.String("slug", params.Slug), slog.String("key", key))
	}

	e.logger.Info("export finished", slog.Int("pages", written))
	return written, nil
}

func PageKey(slug string) string {
	return path.Join("posts", slug, "index.html")
}
