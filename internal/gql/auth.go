package gql

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// ErrUserTokenRequired is returned for requests marked with
// RequireUserToken that carry no user token.
var ErrUserTokenRequired = errors.New("user token required")

type userTokenKey struct{}

type requireUserTokenKey struct{}

// WithUserToken marks requests made with ctx as user-pool authenticated.
// The token is sent as-is in the Authorization header and replaces the
// default auth mode for that request.
func WithUserToken(ctx context.Context, token string) context.Context {
	token = strings.TrimSpace(token)
	if token == "" {
		return ctx
	}

	return context.WithValue(ctx, userTokenKey{}, token)
}

func UserToken(ctx context.Context) string {
	token, _ := ctx.Value(userTokenKey{}).(string)
	return token
}

// RequireUserToken marks requests made with ctx as user-only. Without a
// user token they fail with ErrUserTokenRequired instead of falling back to
// the API key or IAM credentials.
func RequireUserToken(ctx context.Context) context.Context {
	return context.WithValue(ctx, requireUserTokenKey{}, true)
}

func UserTokenRequired(ctx context.Context) bool {
	required, _ := ctx.Value(requireUserTokenKey{}).(bool)
	return required
}

type authTransport struct {
	base   http.RoundTripper
	apiKey string
	signer *iamSigner
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())

	if token := UserToken(req.Context()); token != "" {
		clone.Header.Set("Authorization", token)
		return t.base.RoundTrip(clone)
	}

	if UserTokenRequired(req.Context()) {
		return nil, ErrUserTokenRequired
	}

	if t.signer != nil {
		if err := t.signer.sign(clone); err != nil {
			return nil, err
		}
		return t.base.RoundTrip(clone)
	}

	if t.apiKey != "" {
		clone.Header.Set("x-api-key", t.apiKey)
	}
	return t.base.RoundTrip(clone)
}
