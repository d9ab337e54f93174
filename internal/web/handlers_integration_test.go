package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"postpage/framework/httpserver"
	"postpage/internal/gql/gqltest"
	"postpage/internal/posts"
	"postpage/internal/staticgen"
	"postpage/internal/web/appcore"
)

const testAuthCookie = "blog_id_token"

func postPayload(id string, slug string, published bool) string {
	payload, _ := json.Marshal(map[string]interface{}{
		"postsBySlug": map[string]interface{}{
			"items": []map[string]interface{}{{
				"id":        id,
				"slug":      slug,
				"title":     "Hello World",
				"content":   "# Hello\n\nSome `code` here.",
				"published": published,
				"owner":     "user-1",
				"createdAt": "2024-01-02T00:00:00.000Z",
				"updatedAt": "2024-01-03T00:00:00.000Z",
			}},
		},
	})
	return string(payload)
}

type testApp struct {
	handler http.Handler
	client  *gqltest.Client
	paths   *staticgen.PathSet
}

func newTestApp(t *testing.T, client *gqltest.Client, slugs ...string) testApp {
	t.Helper()

	paths := staticgen.NewPathSet()
	for _, slug := range slugs {
		paths.Add(slug)
	}

	appCtx := appcore.NewContext(appcore.Options{
		Service:    posts.NewService(client, "https://blog.example.com"),
		Paths:      paths,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		AuthCookie: testAuthCookie,
		RootURL:    "https://blog.example.com",
	})

	handler, err := httpserver.New(httpserver.Config[*appcore.Context]{
		AppContext:      appCtx,
		Handlers:        Handlers(),
		IsNotFoundError: appcore.IsNotFoundError,
		NotFoundPage:    NotFoundPage,
		PrivateRequest: func(r *http.Request) bool {
			return appcore.IsPrivateRequest(appCtx, r)
		},
	})
	require.NoError(t, err)

	return testApp{handler: handler, client: client, paths: paths}
}

func (a testApp) get(path string, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: testAuthCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a testApp) action(path string, postID string, token string) *httptest.ResponseRecorder {
	body := `{"postId":"` + postID + `"}`
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Datastar-Request", "true")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func TestPostPageRendersPublishedPost(t *testing.T) {
	client := gqltest.NewClient().Respond("PostsBySlug", postPayload("abc", "hello-world", true))
	app := newTestApp(t, client, "hello-world")

	rec := app.get("/posts/hello-world", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=3600, s-maxage=3600", rec.Header().Get("Cache-Control"))

	body := rec.Body.String()
	assert.Contains(t, body, "<title>Hello World</title>")
	assert.Contains(t, body, `<link rel="canonical" href="https://blog.example.com/posts/hello-world">`)
	assert.Contains(t, body, "Edit post")
	assert.Contains(t, body, `href="/edit/hello-world"`)
	assert.Contains(t, body, "Convert to draft")
	assert.Contains(t, body, `data-icon="lock"`)
	assert.Contains(t, body, "@post(&#39;/posts/hello-world/draft&#39;)")
	assert.Contains(t, body, `id="hello">Hello</h1>`)
	assert.NotContains(t, body, "This is a draft post.")
	assert.NotContains(t, body, "Publish draft")
}

func TestPostPageRendersDraftBanner(t *testing.T) {
	// A post still in the path set that the backend already reports as a draft.
	client := gqltest.NewClient().Respond("PostsBySlug", postPayload("abc", "hello-world", false))
	app := newTestApp(t, client, "hello-world")

	rec := app.get("/posts/hello-world", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "This is a draft post.")
	assert.Contains(t, body, "Publish draft")
	assert.Contains(t, body, "Edit draft")
	assert.Contains(t, body, `data-icon="badge"`)
	assert.Contains(t, body, "@post(&#39;/posts/hello-world/publish&#39;)")
	assert.NotContains(t, body, "Convert to draft")
}

func TestPostPageUnknownSlugIsNotFound(t *testing.T) {
	client := gqltest.NewClient().Respond("PostsBySlug", `{"postsBySlug":{"items":[]}}`)
	app := newTestApp(t, client, "hello-world", "gone")

	rec := app.get("/posts/gone", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestPostPageOutsidePathSetIsNotFound(t *testing.T) {
	client := gqltest.NewClient().Respond("PostsBySlug", postPayload("abc", "secret-draft", false))
	app := newTestApp(t, client, "hello-world")

	rec := app.get("/posts/secret-draft", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, client.Calls("PostsBySlug"), "no backend call for slugs outside the path set")

	rec = app.get("/posts/Not%20A%20Slug", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostPageOwnerPreview(t *testing.T) {
	client := gqltest.NewClient().Respond("PostsBySlug", postPayload("abc", "secret-draft", false))
	app := newTestApp(t, client, "hello-world")

	rec := app.get("/posts/secret-draft", "owner-token")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "private, no-store", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Body.String(), "This is a draft post.")
	assert.NotContains(t, rec.Body.String(), `rel="canonical"`)

	calls := client.Calls("PostsBySlug")
	require.Len(t, calls, 1)
	assert.Equal(t, "owner-token", calls[0].UserToken)
}

func TestPublishActionRedirectsToPost(t *testing.T) {
	client := gqltest.NewClient().
		Respond("UpdatePost", `{"updatePost":{"id":"abc","slug":"hello-world","published":true}}`)
	app := newTestApp(t, client)

	rec := app.action("/posts/hello-world/publish", "abc", "owner-token")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/event-stream"))
	assert.Contains(t, rec.Body.String(), "window.location")
	assert.Contains(t, rec.Body.String(), "/posts/hello-world")

	calls := client.Calls("UpdatePost")
	require.Len(t, calls, 1)
	assert.Equal(t, "owner-token", calls[0].UserToken)
	assert.JSONEq(t, `{"id":"abc","published":true}`, string(calls[0].Variables["input"]))

	assert.True(t, app.paths.Contains("hello-world"))
}

func TestConvertToDraftRedirectsToEditor(t *testing.T) {
	client := gqltest.NewClient().
		Respond("UpdatePost", `{"updatePost":{"id":"abc","slug":"hello-world","published":false}}`)
	app := newTestApp(t, client, "hello-world")

	rec := app.action("/posts/hello-world/draft", "abc", "owner-token")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/edit/hello-world")

	calls := client.Calls("UpdatePost")
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{"id":"abc","published":false}`, string(calls[0].Variables["input"]))

	assert.False(t, app.paths.Contains("hello-world"))
}

func TestConvertToDraftOnlyRemovesReturnedSlug(t *testing.T) {
	client := gqltest.NewClient().
		Respond("UpdatePost", `{"updatePost":{"id":"mine","slug":"my-post","published":false}}`).
		Respond("PostsBySlug", postPayload("theirs", "someone-elses-post", true))
	app := newTestApp(t, client, "someone-elses-post", "my-post")

	rec := app.action("/posts/someone-elses-post/draft", "mine", "owner-token")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/edit/my-post")

	assert.False(t, app.paths.Contains("my-post"))
	assert.True(t, app.paths.Contains("someone-elses-post"))

	page := app.get("/posts/someone-elses-post", "")
	assert.Equal(t, http.StatusOK, page.Code)
}

func TestRedirectFollowsRequestedState(t *testing.T) {
	// The backend echoes a stale published flag; navigation follows the route.
	client := gqltest.NewClient().
		Respond("UpdatePost", `{"updatePost":{"id":"abc","slug":"hello-world","published":false}}`)
	app := newTestApp(t, client)

	rec := app.action("/posts/hello-world/publish", "abc", "owner-token")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/posts/hello-world")
	assert.NotContains(t, rec.Body.String(), "/edit/hello-world")
	assert.True(t, app.paths.Contains("hello-world"))
}

func TestAnonymousActionNeverReachesBackend(t *testing.T) {
	client := gqltest.NewClient().
		Respond("UpdatePost", `{"updatePost":{"id":"abc","slug":"hello-world","published":false}}`)
	app := newTestApp(t, client, "hello-world")

	rec := app.action("/posts/hello-world/draft", "abc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/event-stream"))
	assert.NotContains(t, rec.Body.String(), "window.location")
	assert.Empty(t, client.Calls("UpdatePost"))
	assert.True(t, app.paths.Contains("hello-world"))
}

func TestActionFailureIsSwallowed(t *testing.T) {
	client := gqltest.NewClient().
		Respond("PostsBySlug", postPayload("abc", "hello-world", false)).
		Fail("UpdatePost", errors.New("Unauthorized"))
	app := newTestApp(t, client, "hello-world")

	rec := app.action("/posts/hello-world/publish", "abc", "owner-token")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/event-stream"))
	assert.NotContains(t, rec.Body.String(), "window.location")
	assert.Len(t, client.Calls("UpdatePost"), 1)
	assert.True(t, app.paths.Contains("hello-world"))

	page := app.get("/posts/hello-world", "")
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "This is a draft post.")
}

func TestActionWithoutPostIDIsSwallowed(t *testing.T) {
	client := gqltest.NewClient()
	app := newTestApp(t, client, "hello-world")

	rec := app.action("/posts/hello-world/publish", "", "owner-token")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "window.location")
	assert.Empty(t, client.Calls("UpdatePost"))
}

func TestConcurrentActionForSamePostIsDropped(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	client := gqltest.NewClient().Handle("UpdatePost", func(context.Context, map[string]json.RawMessage) (string, error) {
		close(started)
		<-release
		return `{"updatePost":{"id":"abc","slug":"hello-world","published":true}}`, nil
	})
	app := newTestApp(t, client)

	var wg sync.WaitGroup
	var first *httptest.ResponseRecorder
	wg.Add(1)
	go func() {
		defer wg.Done()
		first = app.action("/posts/hello-world/publish", "abc", "owner-token")
	}()

	<-started
	second := app.action("/posts/hello-world/publish", "abc", "owner-token")
	close(release)
	wg.Wait()

	assert.NotContains(t, second.Body.String(), "window.location")
	assert.Contains(t, first.Body.String(), "/posts/hello-world")
	assert.Len(t, client.Calls("UpdatePost"), 1)
}

func TestUnmatchedRouteIsNotFound(t *testing.T) {
	app := newTestApp(t, gqltest.NewClient())

	rec := app.get("/missing/page", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nothing lives at /missing/page.")
}
