package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/rise-platform/rise-edge/internal/metrics"
)

var ErrUnauthorized = errors.New("unauthorized")

type Client struct {
	client *resty.Client
}

// NewClient creates auth API client, transport might be nil
func NewClient(baseURL, serviceKey string, timeout time.Duration, transport http.RoundTripper) *Client {
	if transport == nil {
		transport = metrics.NewRequestWatcher("supabase")
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetTransport(transport).
		SetHeader("apikey", serviceKey)

	return &Client{
		client: client,
	}
}

// GetUser validates the access token and returns the owner of it
// see: https://supabase.com/docs/reference/api/get-user
func (c *Client) GetUser(ctx context.Context, jwt string) (*User, error) {
	var (
		user   User
		errRsp ErrorResponse
	)

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader(metrics.AliasHeader, "get-user").
		SetAuthToken(jwt).
		SetResult(&user).
		SetError(&errRsp).
		Get("/auth/v1/user")
	if err != nil {
		return nil, fmt.Errorf("request do: %w", err)
	}

	switch {
	case resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, errRsp.Text())
	case resp.IsError():
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode(), errRsp.Text())
	}

	if user.ID == "" {
		return nil, fmt.Errorf("%w: empty user", ErrUnauthorized)
	}

	return &user, nil
}
