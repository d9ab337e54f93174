package appcore

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"postpage/internal/posts"
	"postpage/internal/staticgen"
)

var errPostServiceUnavailable = errors.New("post service unavailable")

type PostService interface {
	staticgen.Source
	SetPublished(ctx context.Context, id string, published bool) (*posts.PublishResult, error)
}

type Options struct {
	Service    PostService
	Paths      *staticgen.PathSet
	Logger     *slog.Logger
	AuthCookie string
	RootURL    string
}

type Context struct {
	service    PostService
	paths      *staticgen.PathSet
	logger     *slog.Logger
	authCookie string
	rootURL    string
	inflight   *inflightSet
}

func NewContext(opts Options) *Context {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	paths := opts.Paths
	if paths == nil {
		paths = staticgen.NewPathSet()
	}

	return &Context{
		service:    opts.Service,
		paths:      paths,
		logger:     logger,
		authCookie: strings.TrimSpace(opts.AuthCookie),
		rootURL:    opts.RootURL,
		inflight:   newInflightSet(),
	}
}

func (c *Context) Paths() *staticgen.PathSet {
	return c.paths
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, posts.ErrNotFound)
}

func postService(appCtx *Context) (PostService, error) {
	if appCtx == nil || appCtx.service == nil {
		return nil, errPostServiceUnavailable
	}
	return appCtx.service, nil
}

// inflightSet tracks post ids with a publish-state mutation in progress.
type inflightSet struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func newInflightSet() *inflightSet {
	return &inflightSet{ids: make(map[string]struct{})}
}

func (s *inflightSet) acquire(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.ids[id]; busy {
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

func (s *inflightSet) release(id string) {
	s.mu.Lock()
	delete(s.ids, id)
	s.mu.Unlock()
}
