package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genius-wizard-dev/storefront/internal/client/tokenstore"
)

func TestNew_Validation(t *testing.T) {
	store := tokenstore.NewMemoryStore()

	tests := []struct {
		name   string
		cfg    func() Config
		store  tokenstore.Store
		opts   []Option
		errMsg string
	}{
		{
			name:   "missing store",
			cfg:    func() Config { return DefaultConfig("http://x") },
			errMsg: "token store is required",
		},
		{
			name: "missing refresh endpoint",
			cfg: func() Config {
				c := DefaultConfig("http://x")
				c.Endpoints.Refresh = ""
				return c
			},
			store:  store,
			errMsg: "refresh endpoint is required",
		},
		{
			name: "missing introspect endpoint",
			cfg: func() Config {
				c := DefaultConfig("http://x")
				c.Endpoints.Introspect = ""
				return c
			},
			store:  store,
			errMsg: "introspect endpoint is required",
		},
		{
			name:   "missing base url",
			cfg:    func() Config { return DefaultConfig("") },
			store:  store,
			errMsg: "base URL is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s tokenstore.Store
			if tt.store != nil {
				s = tt.store
			}
			_, err := New(tt.cfg(), s, tt.opts...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	cfg := DefaultConfig("http://localhost:8080")
	cfg.RefreshTimeout = 0
	cfg.IntrospectTimeout = 0

	c, err := New(cfg, tokenstore.NewMemoryStore())
	require.NoError(t, err)
	defer c.Close() // nolint:errcheck

	assert.Equal(t, defaultRefreshTimeout, c.refreshTimeout)
	assert.Equal(t, defaultIntrospectTimeout, c.introspectTimeout)
	assert.IsType(t, &HTTPExecutor{}, c.exec)
	assert.Equal(t, DefaultEndpoints(), c.Endpoints())
}

func TestNew_IntrospectionOffNeedsNoEndpoint(t *testing.T) {
	cfg := DefaultConfig("http://x")
	cfg.Introspect = false
	cfg.Endpoints.Introspect = ""

	_, err := New(cfg, tokenstore.NewMemoryStore())
	require.NoError(t, err)
}

func TestClient_TokenHelpers(t *testing.T) {
	c, _ := newTestClient(t, newFakeExecutor(), "")
	ctx := context.Background()

	_, ok := c.Token(ctx)
	assert.False(t, ok)

	require.NoError(t, c.SaveToken(ctx, "t1"))
	tok, ok := c.Token(ctx)
	assert.True(t, ok)
	assert.Equal(t, "t1", tok)

	require.NoError(t, c.ClearToken(ctx))
	_, ok = c.Token(ctx)
	assert.False(t, ok)
}

func TestDo_AfterClose(t *testing.T) {
	exec := newFakeExecutor()
	c, _ := newTestClient(t, exec, "abc")
	require.NoError(t, c.Close())

	_, err := c.Do(context.Background(), NewRequest(http.MethodGet, "/cart", nil))
	require.ErrorIs(t, err, ErrClosed)
	assert.Empty(t, exec.callsTo("/cart"))
}

func TestDo_NonAuthErrorsPassThrough(t *testing.T) {
	exec := newFakeExecutor()
	exec.handle("/cart", func(_ context.Context, req *Request) (*Response, error) {
		return nil, &ResponseError{StatusCode: http.StatusForbidden, Request: req}
	})
	c, _ := newTestClient(t, exec, "abc")

	_, err := c.Do(context.Background(), NewRequest(http.MethodGet, "/cart", nil))
	require.ErrorIs(t, err, ErrForbidden)
	assert.Len(t, exec.callsTo("/cart"), 1)
	assert.Empty(t, exec.callsTo("/identity/auth/refresh"))
}
