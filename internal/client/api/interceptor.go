package api

import (
	"context"
	"net/http"

	"github.com/genius-wizard-dev/storefront/internal/common"
)

// endpointOf reports which public endpoint path designates, if any.
func (c *Client) endpointOf(path string) Endpoint {
	return c.public[normalizePath(path)]
}

func (c *Client) isPublic(req *Request) bool {
	return c.endpointOf(req.Path) != EndpointNone
}

// authorize prepares req for one attempt. Public requests go out bare.
// Otherwise token (or, when empty, the stored token) is attached and an
// introspection of it is started in the background.
func (c *Client) authorize(ctx context.Context, req *Request, token string) {
	if req.Header == nil {
		req.Header = make(http.Header)
	}
	req.Header.Del(common.AuthorizationHeader)
	req.sentWith = ""

	if c.isPublic(req) {
		return
	}

	if token == "" {
		t, ok := c.currentToken(ctx)
		if !ok {
			return
		}
		token = t
	}

	req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	req.sentWith = token

	if c.introspect {
		c.goIntrospect(ctx, token)
	}
}

// goIntrospect checks token with the backend without holding up the
// request that carries it. Only an explicit "valid: false" has an effect:
// the verdict is handed to the refresh coordinator, the same way a 401 is,
// so an expired token is renewed once however many requests and
// introspections notice it. The session ends only when that refresh fails.
// Errors are logged and dropped.
func (c *Client) goIntrospect(ctx context.Context, token string) {
	c.bgMu.Lock()
	if c.closed {
		c.bgMu.Unlock()
		return
	}
	c.bg.Add(1)
	c.bgMu.Unlock()

	go func() {
		defer c.bg.Done()

		ictx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.introspectTimeout)
		defer cancel()

		valid, err := c.checkToken(ictx, token)
		if err != nil {
			c.log.Warn(ictx, "token introspection failed", "error", err)
			return
		}
		if valid {
			return
		}

		if cur, ok := c.currentToken(ictx); !ok || cur != token {
			c.log.Debug(ictx, "introspected token already replaced")
			return
		}

		if _, _, err := c.coord.refresh(ictx, token); err != nil {
			c.log.Warn(ictx, "could not renew token reported invalid", "error", err)
			return
		}
		c.log.Debug(ictx, "token reported invalid was renewed")
	}()
}

func (c *Client) checkToken(ctx context.Context, token string) (bool, error) {
	req := NewRequest(http.MethodPost, c.endpoints.Introspect, tokenBody{Token: token})
	resp, err := c.exec.Execute(ctx, req)
	if err != nil {
		return false, err
	}
	res, err := DecodeResult[introspectResult](resp)
	if err != nil {
		return false, err
	}
	return res.Valid == nil || *res.Valid, nil
}
