package api

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/genius-wizard-dev/storefront/internal/client/tokenstore"
	"github.com/genius-wizard-dev/storefront/internal/logging"
)

const defaultIntrospectTimeout = 5 * time.Second

// Config holds the client settings.
type Config struct {
	BaseURL           string
	RequestTimeout    time.Duration
	RefreshTimeout    time.Duration
	Introspect        bool
	IntrospectTimeout time.Duration
	Endpoints         Endpoints
}

// DefaultConfig returns a configuration pointing at baseURL with the
// standard identity paths and introspection enabled.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:           baseURL,
		RequestTimeout:    defaultRequestTimeout,
		RefreshTimeout:    defaultRefreshTimeout,
		Introspect:        true,
		IntrospectTimeout: defaultIntrospectTimeout,
		Endpoints:         DefaultEndpoints(),
	}
}

// Option customises a Client.
type Option func(*Client)

// WithExecutor replaces the HTTP executor, mostly for tests.
func WithExecutor(e Executor) Option {
	return func(c *Client) { c.exec = e }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithSessionInvalidHook registers fn to run when the stored token has been
// cleared because the server rejected it and it could not be refreshed.
func WithSessionInvalidHook(fn func()) Option {
	return func(c *Client) { c.onSessionInvalid = fn }
}

// Client is the authenticated storefront HTTP client.
type Client struct {
	exec  Executor
	store tokenstore.Store
	log   logging.Logger

	endpoints Endpoints
	public    map[string]Endpoint

	introspect        bool
	introspectTimeout time.Duration
	refreshTimeout    time.Duration
	onSessionInvalid  func()

	coord *coordinator

	bgMu   sync.Mutex
	bg     sync.WaitGroup
	closed bool
}

// New builds a Client over store.
func New(cfg Config, store tokenstore.Store, opts ...Option) (*Client, error) {
	if store == nil {
		return nil, errors.New("api: token store is required")
	}
	if cfg.Endpoints.Refresh == "" {
		return nil, errors.New("api: refresh endpoint is required")
	}
	if cfg.Introspect && cfg.Endpoints.Introspect == "" {
		return nil, errors.New("api: introspect endpoint is required when introspection is on")
	}

	c := &Client{
		store:             store,
		log:               logging.NewNop(),
		endpoints:         cfg.Endpoints,
		public:            cfg.Endpoints.public(),
		introspect:        cfg.Introspect,
		introspectTimeout: cfg.IntrospectTimeout,
		refreshTimeout:    cfg.RefreshTimeout,
	}
	if c.introspectTimeout <= 0 {
		c.introspectTimeout = defaultIntrospectTimeout
	}
	if c.refreshTimeout <= 0 {
		c.refreshTimeout = defaultRefreshTimeout
	}

	for _, o := range opts {
		o(c)
	}

	if c.exec == nil {
		if cfg.BaseURL == "" {
			return nil, errors.New("api: base URL is required")
		}
		c.exec = NewHTTPExecutor(cfg.BaseURL, cfg.RequestTimeout)
	}

	c.coord = newCoordinator(c.exchangeToken, c.log)
	return c, nil
}

// Endpoints returns the configured identity paths.
func (c *Client) Endpoints() Endpoints { return c.endpoints }

// Do sends req and recovers once from an expired token.
//
// A 401 on an authenticated, not yet replayed request enters the refresh
// coordinator. The request that starts the exchange gets its original 401
// back if the exchange fails; requests that queued behind it get the
// *RefreshError. On success every one of them is replayed once with the
// new token. Do sets req's Authorization header on every attempt.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if c.isClosed() {
		return nil, ErrClosed
	}

	resp, err := c.send(ctx, req, "")
	if err == nil || !c.recoverable(req, err) {
		return resp, err
	}
	req.retried = true

	// A refresh may have settled between sending and the 401 arriving.
	if cur, ok := c.currentToken(ctx); ok && cur != req.sentWith {
		c.log.Debug(ctx, "401 for a replaced token, replaying", "path", req.Path)
		return c.send(ctx, req, cur)
	}

	token, driver, rerr := c.coord.refresh(ctx, req.sentWith)
	if rerr != nil {
		if driver {
			return nil, err
		}
		return nil, rerr
	}

	return c.send(ctx, req, token)
}

func (c *Client) send(ctx context.Context, req *Request, token string) (*Response, error) {
	c.authorize(ctx, req, token)
	return c.exec.Execute(ctx, req)
}

func (c *Client) recoverable(req *Request, err error) bool {
	return errors.Is(err, ErrUnauthorized) && !req.retried && !c.isPublic(req)
}

// SaveToken stores a token obtained from login.
func (c *Client) SaveToken(ctx context.Context, token string) error {
	return c.store.Set(ctx, token)
}

// ClearToken forgets the stored token.
func (c *Client) ClearToken(ctx context.Context) error {
	return c.store.Clear(ctx)
}

// Token returns the stored token, treating storage errors as absence.
func (c *Client) Token(ctx context.Context) (string, bool) {
	return c.currentToken(ctx)
}

func (c *Client) currentToken(ctx context.Context) (string, bool) {
	token, ok, err := c.store.Get(ctx)
	if err != nil {
		c.log.Error(ctx, "failed to read access token", "error", err)
		return "", false
	}
	return token, ok
}

// endSession clears token if the store still holds it and, when it did,
// runs the session-invalid hook. A token is only ever cleared once, so the
// hook runs once per ended session.
func (c *Client) endSession(ctx context.Context, token string) {
	cleared, err := c.store.ClearIf(ctx, token)
	if err != nil {
		c.log.Error(ctx, "failed to clear access token", "error", err)
		return
	}
	if !cleared {
		return
	}

	c.log.Warn(ctx, "access token rejected, session ended")
	if c.onSessionInvalid != nil {
		c.onSessionInvalid()
	}
}

func (c *Client) isClosed() bool {
	c.bgMu.Lock()
	defer c.bgMu.Unlock()
	return c.closed
}

// Close stops accepting requests and waits for background introspections.
func (c *Client) Close() error {
	c.bgMu.Lock()
	c.closed = true
	c.bgMu.Unlock()

	c.bg.Wait()
	return nil
}
