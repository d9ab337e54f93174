// Package gqltest provides an in-memory graphql.Client for tests.
package gqltest

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Khan/genqlient/graphql"
	"postpage/internal/gql"
)

// Handler answers one operation. It returns the JSON "data" payload.
type Handler func(ctx context.Context, variables map[string]json.RawMessage) (string, error)

type Call struct {
	OpName    string
	Variables map[string]json.RawMessage
	UserToken string
}

// Client routes requests by operation name and records every call.
type Client struct {
	mu       sync.Mutex
	handlers map[string]Handler
	calls    []Call
}

func NewClient() *Client {
	return &Client{handlers: make(map[string]Handler)}
}

func (c *Client) Handle(opName string, handler Handler) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.handlers[opName] = handler
	return c
}

// Respond registers a handler that always returns payload.
func (c *Client) Respond(opName string, payload string) *Client {
	return c.Handle(opName, func(context.Context, map[string]json.RawMessage) (string, error) {
		return payload, nil
	})
}

// Fail registers a handler that always returns err.
func (c *Client) Fail(opName string, err error) *Client {
	return c.Handle(opName, func(context.Context, map[string]json.RawMessage) (string, error) {
		return "", err
	})
}

func (c *Client) MakeRequest(ctx context.Context, req *graphql.Request, resp *graphql.Response) error {
	variables, err := decodeVariables(req.Variables)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.calls = append(c.calls, Call{
		OpName:    req.OpName,
		Variables: variables,
		UserToken: gql.UserToken(ctx),
	})
	handler, ok := c.handlers[req.OpName]
	c.mu.Unlock()

	if gql.UserTokenRequired(ctx) && gql.UserToken(ctx) == "" {
		return gql.ErrUserTokenRequired
	}
	if !ok {
		return fmt.Errorf("gqltest: no handler for operation %q", req.OpName)
	}

	payload, err := handler(ctx, variables)
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(payload), resp.Data)
}

func (c *Client) Calls(opName string) []Call {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Call, 0, len(c.calls))
	for _, call := range c.calls {
		if opName == "" || call.OpName == opName {
			out = append(out, call)
		}
	}
	return out
}

// Var decodes a single request variable into target.
func (call Call) Var(name string, target interface{}) error {
	raw, ok := call.Variables[name]
	if !ok {
		return fmt.Errorf("gqltest: variable %q not set", name)
	}
	return json.Unmarshal(raw, target)
}

// VarString returns a string variable, or "" when missing.
func VarString(variables map[string]json.RawMessage, name string) string {
	raw, ok := variables[name]
	if !ok {
		return ""
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return ""
	}
	return value
}

func decodeVariables(variables interface{}) (map[string]json.RawMessage, error) {
	values := make(map[string]json.RawMessage)
	if variables == nil {
		return values, nil
	}

	raw, err := json.Marshal(variables)
	if err != nil {
		return nil, fmt.Errorf("gqltest: encode variables: %w", err)
	}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("gqltest: decode variables: %w", err)
	}
	return values, nil
}
