package httpserver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"postpage/framework"
)

type componentFunc func(ctx context.Context, w io.Writer) error

func (f componentFunc) Render(ctx context.Context, w io.Writer) error {
	return f(ctx, w)
}

func textComponent(value string) templ.Component {
	return componentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, value)
		return err
	})
}

func wrapComponent(tag string, child templ.Component) templ.Component {
	return componentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "["+tag+"]"); err != nil {
			return err
		}
		if err := child.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "[/"+tag+"]")
		return err
	})
}

func TestHTTPServerCachePolicies(t *testing.T) {
	t.Parallel()

	staticDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(staticDir, "file.txt"), []byte("asset"), 0o644); err != nil {
		t.Fatalf("write static asset: %v", err)
	}

	handler, err := New(Config[*struct{}]{
		AppContext: &struct{}{},
		Handlers: []framework.RouteHandler[*struct{}]{
			framework.PageOnlyRouteHandler[*struct{}, framework.EmptyParams, string]{
				Page: framework.PageModule[*struct{}, framework.EmptyParams, string]{
					Pattern: "/posts",
					ParseParams: func(path string) (framework.EmptyParams, bool) {
						return framework.EmptyParams{}, path == "/posts"
					},
					Load: func(context.Context, *struct{}, *http.Request, framework.EmptyParams) (string, error) {
						return "page", nil
					},
					Render: func(view string) templ.Component { return textComponent(view) },
					Layouts: []framework.LayoutRenderer[string]{
						func(_ string, child templ.Component) templ.Component {
							return wrapComponent("layout", child)
						},
					},
				},
			},
		},
		Static: StaticMount{
			URLPrefix: "static",
			Dir:       staticDir,
		},
		CachePolicies: CachePolicies{
			HTML:   "html-cache",
			Static: "static-cache",
			Health: "health-cache",
			Error:  "error-cache",
		},
		NotFoundPage: func(framework.NotFoundContext) templ.Component {
			return textComponent("not-found")
		},
	})
	if err != nil {
		t.Fatalf("new http server: %v", err)
	}

	recPage := httptest.NewRecorder()
	handler.ServeHTTP(recPage, httptest.NewRequest(http.MethodGet, "/posts", nil))
	if recPage.Code != http.StatusOK {
		t.Fatalf("page status: expected %d, got %d", http.StatusOK, recPage.Code)
	}
	if got := recPage.Header().Get("Cache-Control"); got != "html-cache" {
		t.Fatalf("page cache policy: expected %q, got %q", "html-cache", got)
	}
	if body := strings.TrimSpace(recPage.Body.String()); body != "[layout]page[/layout]" {
		t.Fatalf("page body: expected layout-wrapped response, got %q", body)
	}

	recStatic := httptest.NewRecorder()
	handler.ServeHTTP(recStatic, httptest.NewRequest(http.MethodGet, "/static/file.txt", nil))
	if recStatic.Code != http.StatusOK {
		t.Fatalf("static status: expected %d, got %d", http.StatusOK, recStatic.Code)
	}
	if got := recStatic.Header().Get("Cache-Control"); got != "static-cache" {
		t.Fatalf("static cache policy: expected %q, got %q", "static-cache", got)
	}

	recHealth := httptest.NewRecorder()
	handler.ServeHTTP(recHealth, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if got := recHealth.Header().Get("Cache-Control"); got != "health-cache" {
		t.Fatalf("health cache policy: expected %q, got %q", "health-cache", got)
	}
	if body := strings.TrimSpace(recHealth.Body.String()); body != "ok" {
		t.Fatalf("health body: expected %q, got %q", "ok", body)
	}

	recMissing := httptest.NewRecorder()
	handler.ServeHTTP(recMissing, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if recMissing.Code != http.StatusNotFound {
		t.Fatalf("missing status: expected %d, got %d", http.StatusNotFound, recMissing.Code)
	}
	if got := recMissing.Header().Get("Cache-Control"); got != "error-cache" {
		t.Fatalf("missing cache policy: expected %q, got %q", "error-cache", got)
	}
	if body := strings.TrimSpace(recMissing.Body.String()); body != "not-found" {
		t.Fatalf("missing body: expected %q, got %q", "not-found", body)
	}
}

func TestHTTPServerActionsRespondWithEventStream(t *testing.T) {
	t.Parallel()

	redirectTo := ""
	handler, err := New(Config[*struct{}]{
		AppContext: &struct{}{},
		Handlers: []framework.RouteHandler[*struct{}]{
			framework.ActionRouteHandler[*struct{}, framework.EmptyParams]{
				Action: framework.ActionModule[*struct{}, framework.EmptyParams]{
					Pattern: "/posts/publish",
					ParseParams: func(path string) (framework.EmptyParams, bool) {
						return framework.EmptyParams{}, path == "/posts/publish"
					},
					Handle: func(context.Context, *struct{}, *http.Request, framework.EmptyParams) (framework.ActionResult, error) {
						return framework.ActionResult{RedirectURL: redirectTo}, nil
					},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("new http server: %v", err)
	}

	recAck := httptest.NewRecorder()
	handler.ServeHTTP(recAck, httptest.NewRequest(http.MethodPost, "/posts/publish", nil))
	if recAck.Code != http.StatusOK {
		t.Fatalf("ack status: expected %d, got %d", http.StatusOK, recAck.Code)
	}
	if got := recAck.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/event-stream") {
		t.Fatalf("ack content type: expected event stream, got %q", got)
	}
	if strings.Contains(recAck.Body.String(), "window.location") {
		t.Fatalf("ack body: did not expect a redirect, got %q", recAck.Body.String())
	}

	redirectTo = "/posts/hello-world"
	recRedirect := httptest.NewRecorder()
	handler.ServeHTTP(recRedirect, httptest.NewRequest(http.MethodPost, "/posts/publish", nil))
	body := recRedirect.Body.String()
	if !strings.Contains(body, "window.location") || !strings.Contains(body, "/posts/hello-world") {
		t.Fatalf("redirect body: expected navigation script, got %q", body)
	}
}

func TestHTTPServerNotFoundContextForLoadAndUnmatched(t *testing.T) {
	t.Parallel()

	errNotFound := errors.New("not found")
	ctxs := make([]framework.NotFoundContext, 0, 2)

	handler, err := New(Config[*struct{}]{
		AppContext: &struct{}{},
		Handlers: []framework.RouteHandler[*struct{}]{
			framework.PageOnlyRouteHandler[*struct{}, framework.EmptyParams, string]{
				Page: framework.PageModule[*struct{}, framework.EmptyParams, string]{
					Pattern: "/posts",
					ParseParams: func(path string) (framework.EmptyParams, bool) {
						return framework.EmptyParams{}, path == "/posts"
					},
					Load: func(context.Context, *struct{}, *http.Request, framework.EmptyParams) (string, error) {
						return "", errNotFound
					},
					Render: func(view string) templ.Component { return textComponent(view) },
				},
			},
		},
		IsNotFoundError: func(err error) bool { return errors.Is(err, errNotFound) },
		NotFoundPage: func(notFoundContext framework.NotFoundContext) templ.Component {
			ctxs = append(ctxs, notFoundContext)
			return textComponent("missing")
		},
	})
	if err != nil {
		t.Fatalf("new http server: %v", err)
	}

	recLoadNotFound := httptest.NewRecorder()
	handler.ServeHTTP(recLoadNotFound, httptest.NewRequest(http.MethodGet, "/posts", nil))
	if recLoadNotFound.Code != http.StatusNotFound {
		t.Fatalf("load not found status: expected %d, got %d", http.StatusNotFound, recLoadNotFound.Code)
	}
	if got := recLoadNotFound.Header().Get("Cache-Control"); got != noStoreCachePolicy {
		t.Fatalf("load not found cache policy: expected %q, got %q", noStoreCachePolicy, got)
	}

	recUnmatched := httptest.NewRecorder()
	handler.ServeHTTP(recUnmatched, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if recUnmatched.Code != http.StatusNotFound {
		t.Fatalf("unmatched status: expected %d, got %d", http.StatusNotFound, recUnmatched.Code)
	}

	if len(ctxs) != 2 {
		t.Fatalf("expected 2 not-found contexts, got %d", len(ctxs))
	}
	if ctxs[0].Source != framework.NotFoundSourcePageLoad {
		t.Fatalf("expected first source %q, got %q", framework.NotFoundSourcePageLoad, ctxs[0].Source)
	}
	if ctxs[1].Source != framework.NotFoundSourceUnmatchedRoute {
		t.Fatalf("expected second source %q, got %q", framework.NotFoundSourceUnmatchedRoute, ctxs[1].Source)
	}
	if ctxs[1].RequestPath != "/missing" {
		t.Fatalf("expected second request path /missing, got %q", ctxs[1].RequestPath)
	}
}
