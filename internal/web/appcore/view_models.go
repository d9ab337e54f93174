package appcore

import (
	"encoding/json"
	"strconv"
	"strings"

	"postpage/framework/router"
	"postpage/internal/posts"
)

const (
	PostRoutePattern    = "/posts/[slug]"
	EditRoutePattern    = "/edit/[slug]"
	PublishRoutePattern = "/posts/[slug]/publish"
	DraftRoutePattern   = "/posts/[slug]/draft"
)

type PostPageView struct {
	PageTitle    string
	Description  string
	CanonicalURL string
	Post         posts.Post
	// Preview is set when the page was rendered for an owner outside the
	// published path set.
	Preview bool
}

// ActionSignals is the client state sent with publish/draft actions. The
// requested state comes from the action route.
type ActionSignals struct {
	PostID string `json:"postId"`
}

func NewPostPageView(post posts.Post, preview bool) PostPageView {
	return PostPageView{
		PageTitle:   post.Title,
		Description: post.Description,
		Post:        post,
		Preview:     preview,
	}
}

func (v PostPageView) ShowDraftBanner() bool {
	return !v.Post.Published
}

func (v PostPageView) EditLabel() string {
	if v.Post.Published {
		return "Edit post"
	}
	return "Edit draft"
}

func (v PostPageView) ToggleLabel() string {
	if v.Post.Published {
		return "Convert to draft"
	}
	return "Publish draft"
}

func (v PostPageView) EditURL() string {
	return EditURL(v.Post.Slug)
}

// ToggleActionURL is the action that flips the post to the opposite state.
func (v PostPageView) ToggleActionURL() string {
	pattern := PublishRoutePattern
	if v.Post.Published {
		pattern = DraftRoutePattern
	}
	return buildSlugPath(pattern, v.Post.Slug)
}

func (v PostPageView) SignalsJSON() string {
	payload, err := json.Marshal(ActionSignals{PostID: v.Post.ID})
	if err != nil {
		return "{}"
	}
	return string(payload)
}

func (v PostPageView) ReadingTimeText() string {
	if v.Post.ReadingMinutes < 1 {
		return ""
	}
	return strconv.Itoa(v.Post.ReadingMinutes) + " min read"
}

func PostURL(slug string) string {
	return buildSlugPath(PostRoutePattern, slug)
}

// CanonicalURL is the absolute post URL, or "" without a root URL.
func CanonicalURL(rootURL string, slug string) string {
	rootURL = strings.TrimRight(strings.TrimSpace(rootURL), "/")
	if rootURL == "" {
		return ""
	}
	return rootURL + PostURL(slug)
}

func EditURL(slug string) string {
	return buildSlugPath(EditRoutePattern, slug)
}

func buildSlugPath(pattern string, slug string) string {
	built, err := router.BuildPath(pattern, map[string]string{"slug": slug})
	if err != nil {
		return "/"
	}
	return built
}
