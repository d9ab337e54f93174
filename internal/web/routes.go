package web

import (
	"github.com/a-h/templ"
	"postpage/framework"
	"postpage/framework/router"
	"postpage/internal/posts"
	"postpage/internal/web/appcore"
	"postpage/internal/web/components"
)

// PostPageModule is the /posts/[slug] page. The export command renders the
// same module so served and exported HTML match.
func PostPageModule() framework.PageModule[*appcore.Context, framework.SlugParams, appcore.PostPageView] {
	return framework.PageModule[*appcore.Context, framework.SlugParams, appcore.PostPageView]{
		Pattern:     appcore.PostRoutePattern,
		ParseParams: slugParser(appcore.PostRoutePattern),
		Load:        appcore.LoadPostPage,
		Render:      components.PostPage,
		Layouts: []framework.LayoutRenderer[appcore.PostPageView]{
			postLayout,
		},
	}
}

func Handlers() []framework.RouteHandler[*appcore.Context] {
	return []framework.RouteHandler[*appcore.Context]{
		framework.PageOnlyRouteHandler[*appcore.Context, framework.SlugParams, appcore.PostPageView]{
			Page: PostPageModule(),
		},
		framework.ActionRouteHandler[*appcore.Context, framework.SlugParams]{
			Action: framework.ActionModule[*appcore.Context, framework.SlugParams]{
				Pattern:     appcore.PublishRoutePattern,
				ParseParams: slugParser(appcore.PublishRoutePattern),
				Handle:      appcore.PublishPost,
			},
		},
		framework.ActionRouteHandler[*appcore.Context, framework.SlugParams]{
			Action: framework.ActionModule[*appcore.Context, framework.SlugParams]{
				Pattern:     appcore.DraftRoutePattern,
				ParseParams: slugParser(appcore.DraftRoutePattern),
				Handle:      appcore.ConvertToDraft,
			},
		},
	}
}

func NotFoundPage(notFoundContext framework.NotFoundContext) templ.Component {
	return components.Layout(
		components.LayoutProps{Title: "Not found"},
		components.NotFound(notFoundContext.RequestPath),
	)
}

func postLayout(view appcore.PostPageView, child templ.Component) templ.Component {
	return components.Layout(components.LayoutProps{
		Title:        view.PageTitle,
		Description:  view.Description,
		CanonicalURL: view.CanonicalURL,
	}, child)
}

func slugParser(pattern string) framework.ParamsParser[framework.SlugParams] {
	return func(path string) (framework.SlugParams, bool) {
		params, ok := router.MatchPathPattern(pattern, path)
		if !ok {
			return framework.SlugParams{}, false
		}
		slug := params["slug"]
		if !router.IsValidSlug(slug) {
			return framework.SlugParams{}, false
		}
		return framework.SlugParams{Slug: slug}, true
	}
}

// RenderStaticPost renders a published post the way /posts/[slug] serves it.
func RenderStaticPost(post posts.Post, rootURL string) templ.Component {
	view := appcore.NewPostPageView(post, false)
	view.CanonicalURL = appcore.CanonicalURL(rootURL, post.Slug)
	return framework.RenderFullPage(PostPageModule(), view)
}
