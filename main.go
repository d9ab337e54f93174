package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"postpage/framework/httpserver"
	"postpage/internal/config"
	"postpage/internal/gql"
	"postpage/internal/logging"
	"postpage/internal/posts"
	"postpage/internal/staticgen"
	"postpage/internal/web"
	"postpage/internal/web/appcore"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	graphqlClient, err := gql.NewClient(ctx, cfg)
	if err != nil {
		fatal(logger, "graphql client setup failed", err)
	}
	postService := posts.NewService(graphqlClient, cfg.RootURL)

	paths := staticgen.NewPathSet()
	refresher := staticgen.NewRefresher(postService, paths, logger)
	if err := refresher.Refresh(ctx); err != nil {
		fatal(logger, "static path resolution failed", err)
	}
	if cfg.PathsRefreshInterval > 0 {
		if err := refresher.Start(cfg.PathsRefreshInterval); err != nil {
			fatal(logger, "static path refresher failed", err)
		}
		defer refresher.Stop()
	}

	appCtx := appcore.NewContext(appcore.Options{
		Service:    postService,
		Paths:      paths,
		Logger:     logger,
		AuthCookie: cfg.AuthCookie,
		RootURL:    cfg.RootURL,
	})

	cachePolicies := httpserver.DefaultCachePolicies()
	if cfg.CacheHTML != "" {
		cachePolicies.HTML = cfg.CacheHTML
	}
	handler, err := httpserver.New(httpserver.Config[*appcore.Context]{
		AppContext:      appCtx,
		Handlers:        web.Handlers(),
		IsNotFoundError: appcore.IsNotFoundError,
		NotFoundPage:    web.NotFoundPage,
		PrivateRequest: func(r *http.Request) bool {
			return appcore.IsPrivateRequest(appCtx, r)
		},
		Static: httpserver.StaticMount{
			URLPrefix: "/static/",
			Dir:       cfg.StaticDir,
		},
		CachePolicies: cachePolicies,
		LogServerError: func(err error) {
			logger.Error("server error", "error", err)
		},
	})
	if err != nil {
		fatal(logger, "handler setup failed", err)
	}

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown failed", "error", err)
		}
	}()

	logger.Info("post page server listening", "addr", cfg.ListenAddr, "paths", paths.Len())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fatal(logger, "server stopped", err)
	}
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}
