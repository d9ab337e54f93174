package appcore

import (
	"context"
	"net/http"
	"strings"

	"postpage/framework"
	"postpage/internal/gql"
	"postpage/internal/posts"
	"postpage/internal/staticgen"
)

// LoadPostPage resolves the view for /posts/{slug}. Published slugs come
// from the static path set. Any other slug is only rendered for requests
// that carry a user token, as a private preview.
func LoadPostPage(
	ctx context.Context,
	appCtx *Context,
	r *http.Request,
	params framework.SlugParams,
) (PostPageView, error) {
	service, err := postService(appCtx)
	if err != nil {
		return PostPageView{}, err
	}

	preview := false
	if !appCtx.paths.Contains(params.Slug) {
		token := RequestUserToken(r, appCtx.authCookie)
		if token == "" {
			return PostPageView{}, posts.ErrNotFound
		}
		ctx = gql.WithUserToken(ctx, token)
		preview = true
	}

	post, err := staticgen.Props(ctx, service, params)
	if err != nil {
		return PostPageView{}, err
	}

	view := NewPostPageView(*post, preview)
	if !preview {
		view.CanonicalURL = CanonicalURL(appCtx.rootURL, post.Slug)
	}
	return view, nil
}

// RequestUserToken returns the caller's user-pool token from the
// Authorization header, or from the named cookie.
func RequestUserToken(r *http.Request, cookieName string) string {
	if r == nil {
		return ""
	}

	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
			return strings.TrimSpace(header[7:])
		}
		return header
	}

	if cookieName == "" {
		return ""
	}
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}

// IsPrivateRequest reports whether the response must not be cached by
// shared caches.
func IsPrivateRequest(appCtx *Context, r *http.Request) bool {
	if appCtx == nil {
		return false
	}
	return RequestUserToken(r, appCtx.authCookie) != ""
}
