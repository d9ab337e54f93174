package components

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"postpage/internal/posts"
	"postpage/internal/web/appcore"
)

func render(t *testing.T, component templ.Component) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, component.Render(context.Background(), &buf))
	return buf.String()
}

func TestLayoutHead(t *testing.T) {
	body := render(t, Layout(LayoutProps{
		Title:        " Hello ",
		Description:  "About <things>",
		CanonicalURL: "https://blog.example.com/posts/hello",
	}, templ.Raw("<p>child</p>")))

	assert.Contains(t, body, "<title>Hello</title>")
	assert.Contains(t, body, `<meta name="description" content="About &lt;things&gt;">`)
	assert.Contains(t, body, `<link rel="canonical" href="https://blog.example.com/posts/hello">`)
	assert.Contains(t, body, `src="`+datastarScriptURL+`"`)
	assert.Contains(t, body, `<main class="page"><p>child</p></main>`)

	bare := render(t, Layout(LayoutProps{}, templ.NopComponent))
	assert.Contains(t, bare, "<title>Blog</title>")
	assert.NotContains(t, bare, `name="description"`)
	assert.NotContains(t, bare, `rel="canonical"`)
}

func TestContextMenuToggle(t *testing.T) {
	published := appcore.NewPostPageView(posts.Post{ID: "abc", Slug: "hello-world", Published: true}, false)
	body := render(t, ContextMenu(published))

	assert.Contains(t, body, `href="/edit/hello-world"`)
	assert.Contains(t, body, `data-on:click="@post(&#39;/posts/hello-world/draft&#39;)"`)
	assert.Contains(t, body, `data-attr:disabled="$_pending"`)
	assert.Contains(t, body, `data-icon="lock"`)
	assert.Contains(t, body, "<span>Convert to draft</span>")

	draft := appcore.NewPostPageView(posts.Post{ID: "abc", Slug: "hello-world"}, false)
	body = render(t, ContextMenu(draft))
	assert.Contains(t, body, `data-icon="badge"`)
	assert.Contains(t, body, "<span>Publish draft</span>")
}

func TestPostBodyMeta(t *testing.T) {
	body := render(t, PostBody(posts.Post{Title: "T", CreatedAt: "2024-01-02"}, "3 min read"))
	assert.Contains(t, body, `<p class="post__meta">2024-01-02 · 3 min read</p>`)

	body = render(t, PostBody(posts.Post{Title: "T"}, ""))
	assert.NotContains(t, body, "post__meta")
}

func TestNotFoundEscapesPath(t *testing.T) {
	body := render(t, NotFound("/<script>"))
	assert.Contains(t, body, "Nothing lives at /&lt;script&gt;.")
}

func TestCancelledContextStopsRendering(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := DraftBanner().Render(ctx, &buf)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, buf.String())
}
