package staticgen

import (
	"context"
	"fmt"

	"postpage/framework"
	"postpage/framework/router"
	"postpage/internal/posts"
)

// Source is the backend view needed to build static routes.
type Source interface {
	ListPublishedSlugs(ctx context.Context) ([]string, error)
	GetPostBySlug(ctx context.Context, slug string) (*posts.Post, error)
}

// Result is the route set for statically served posts. Fallback is always
// false: slugs outside Paths are not generated on demand. Rejected lists
// backend slugs that are not routable and were left out of Paths.
type Result struct {
	Paths    []framework.SlugParams
	Fallback bool
	Rejected []string
}

func Paths(ctx context.Context, source Source) (Result, error) {
	slugs, err := source.ListPublishedSlugs(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("resolve static paths: %w", err)
	}

	paths := make([]framework.SlugParams, 0, len(slugs))
	var rejected []string
	for _, slug := range slugs {
		if !router.IsValidSlug(slug) {
			rejected = append(rejected, slug)
			continue
		}
		paths = append(paths, framework.SlugParams{Slug: slug})
	}

	return Result{Paths: paths, Fallback: false, Rejected: rejected}, nil
}

func Props(ctx context.Context, source Source, params framework.SlugParams) (*posts.Post, error) {
	post, err := source.GetPostBySlug(ctx, params.Slug)
	if err != nil {
		return nil, fmt.Errorf("resolve static props for %q: %w", params.Slug, err)
	}

	return post, nil
}
