package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/genius-wizard-dev/storefront/internal/client/tokenstore"
	"github.com/genius-wizard-dev/storefront/internal/common"
)

type handlerFunc func(ctx context.Context, req *Request) (*Response, error)

type recordedCall struct {
	Path string
	Auth string
}

// fakeExecutor routes requests by path and records what was sent.
type fakeExecutor struct {
	mu       sync.Mutex
	calls    []recordedCall
	handlers map[string]handlerFunc
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{handlers: make(map[string]handlerFunc)}
}

func (f *fakeExecutor) handle(path string, h handlerFunc) {
	f.mu.Lock()
	f.handlers[path] = h
	f.mu.Unlock()
}

func (f *fakeExecutor) Execute(ctx context.Context, req *Request) (*Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, recordedCall{Path: req.Path, Auth: req.Header.Get(common.AuthorizationHeader)})
	h, ok := f.handlers[req.Path]
	f.mu.Unlock()

	if !ok {
		return nil, &ResponseError{StatusCode: http.StatusNotFound, Request: req}
	}
	return h(ctx, req)
}

func (f *fakeExecutor) callsTo(path string) []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recordedCall
	for _, c := range f.calls {
		if c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func envelope(t *testing.T, code int, result any) *Response {
	t.Helper()
	b, err := json.Marshal(map[string]any{"code": code, "result": result})
	require.NoError(t, err)
	return &Response{StatusCode: http.StatusOK, Body: b}
}

func unauthorized(req *Request) error {
	return &ResponseError{StatusCode: http.StatusUnauthorized, Body: []byte(`{"code":1006,"message":"Unauthenticated"}`), Request: req}
}

// requireBearer answers 200 when the request carries want, 401 otherwise.
func requireBearer(t *testing.T, want string) handlerFunc {
	return func(_ context.Context, req *Request) (*Response, error) {
		if req.Header.Get(common.AuthorizationHeader) != common.BearerPrefix+want {
			return nil, unauthorized(req)
		}
		return envelope(t, common.CodeSuccess, map[string]string{"path": req.Path}), nil
	}
}

func refreshTo(t *testing.T, token string) handlerFunc {
	return func(_ context.Context, _ *Request) (*Response, error) {
		return envelope(t, common.CodeSuccess, map[string]any{"token": token, "authenticated": true}), nil
	}
}

func newTestClient(t *testing.T, exec Executor, token string, opts ...Option) (*Client, *tokenstore.MemoryStore) {
	t.Helper()
	cfg := DefaultConfig("http://unused")
	cfg.Introspect = false
	return newTestClientWith(t, cfg, exec, token, opts...)
}

func newTestClientWith(t *testing.T, cfg Config, exec Executor, token string, opts ...Option) (*Client, *tokenstore.MemoryStore) {
	t.Helper()
	store := tokenstore.NewMemoryStore()
	if token != "" {
		require.NoError(t, store.Set(context.Background(), token))
	}

	c, err := New(cfg, store, append([]Option{WithExecutor(exec)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, store
}

func storedToken(t *testing.T, s tokenstore.Store) string {
	t.Helper()
	tok, _, err := s.Get(context.Background())
	require.NoError(t, err)
	return tok
}

func path(i int) string { return fmt.Sprintf("/orders/%d", i) }
