package appcore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
	"postpage/framework"
	"postpage/internal/gql"
)

var errMissingPostID = errors.New("missing post id")

// PublishPost handles the "Publish draft" toggle.
func PublishPost(
	ctx context.Context,
	appCtx *Context,
	r *http.Request,
	params framework.SlugParams,
) (framework.ActionResult, error) {
	return setPublished(ctx, appCtx, r, params, true)
}

// ConvertToDraft handles the "Convert to draft" toggle.
func ConvertToDraft(
	ctx context.Context,
	appCtx *Context,
	r *http.Request,
	params framework.SlugParams,
) (framework.ActionResult, error) {
	return setPublished(ctx, appCtx, r, params, false)
}

// setPublished runs the mutation and maps the outcome to a navigation.
// Failures are logged and answered with an empty acknowledgement so the
// page stays as it is.
func setPublished(
	ctx context.Context,
	appCtx *Context,
	r *http.Request,
	params framework.SlugParams,
	published bool,
) (framework.ActionResult, error) {
	service, err := postService(appCtx)
	if err != nil {
		return framework.ActionResult{}, err
	}

	logger := appCtx.logger.With(
		slog.String("slug", params.Slug),
		slog.Bool("published", published),
	)

	postID, err := readPostID(r)
	if err != nil {
		logger.Warn("publish action rejected", slog.Any("error", err))
		return framework.ActionResult{}, nil
	}
	logger = logger.With(slog.String("post_id", postID))

	token := RequestUserToken(r, appCtx.authCookie)
	if token == "" {
		logger.Warn("publish action rejected", slog.Any("error", gql.ErrUserTokenRequired))
		return framework.ActionResult{}, nil
	}

	if !appCtx.inflight.acquire(postID) {
		logger.Info("publish action already in flight")
		return framework.ActionResult{}, nil
	}
	defer appCtx.inflight.release(postID)

	result, err := service.SetPublished(gql.WithUserToken(ctx, token), postID, published)
	if err != nil {
		logger.Error("publish action failed", slog.Any("error", err))
		return framework.ActionResult{}, nil
	}

	// The route slug may name a different post; only result.Slug is touched.
	logger.Info("publish state changed", slog.String("new_slug", result.Slug))
	if published {
		appCtx.paths.Add(result.Slug)
		return framework.ActionResult{RedirectURL: PostURL(result.Slug)}, nil
	}

	appCtx.paths.Remove(result.Slug)
	return framework.ActionResult{RedirectURL: EditURL(result.Slug)}, nil
}

func readPostID(r *http.Request) (string, error) {
	var signals ActionSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		return "", fmt.Errorf("read signals: %w", err)
	}

	postID := strings.TrimSpace(signals.PostID)
	if postID == "" {
		return "", errMissingPostID
	}
	return postID, nil
}
