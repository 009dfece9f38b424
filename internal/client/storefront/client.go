package storefront

import (
	"context"
	"net/url"

	"github.com/genius-wizard-dev/storefront/internal/client/api"
)

// Client is the subset of *api.Client the services rely on.
type Client interface {
	Do(ctx context.Context, req *api.Request) (*api.Response, error)
	SaveToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
	Token(ctx context.Context) (string, bool)
	Endpoints() api.Endpoints
}

// call sends req and decodes the envelope result into T.
func call[T any](ctx context.Context, c Client, req *api.Request) (T, error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		var zero T
		return zero, err
	}
	return api.DecodeResult[T](resp)
}

// exec is call for endpoints whose result is irrelevant.
func exec(ctx context.Context, c Client, req *api.Request) error {
	_, err := call[struct{}](ctx, c, req)
	return err
}

func escape(segment string) string {
	return url.PathEscape(segment)
}
