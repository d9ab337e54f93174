package web

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"postpage/framework"
	"postpage/internal/posts"
)

func TestSlugParser(t *testing.T) {
	parse := slugParser("/posts/[slug]/publish")

	params, ok := parse("/posts/hello-world/publish")
	require.True(t, ok)
	assert.Equal(t, framework.SlugParams{Slug: "hello-world"}, params)

	_, ok = parse("/posts/hello-world")
	assert.False(t, ok)
	_, ok = parse("/posts/Hello World/publish")
	assert.False(t, ok)
}

func TestRenderStaticPostMatchesServedPage(t *testing.T) {
	post := posts.Post{
		ID:        "abc",
		Slug:      "hello-world",
		Title:     "Hello World",
		BodyHTML:  "<p>body</p>",
		Published: true,
		CreatedAt: "2024-01-02",
	}

	var buf bytes.Buffer
	require.NoError(t, RenderStaticPost(post, "https://blog.example.com/").Render(context.Background(), &buf))

	body := buf.String()
	assert.Contains(t, body, "<!doctype html>")
	assert.Contains(t, body, `href="https://blog.example.com/posts/hello-world"`)
	assert.Contains(t, body, "<p>body</p>")
	assert.Contains(t, body, "Convert to draft")
	assert.Contains(t, body, "2024-01-02")
	assert.Contains(t, body, `data-signals="{&#34;postId&#34;:&#34;abc&#34;}"`)
}
