package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/genius-wizard-dev/storefront/internal/client/api"
	"github.com/genius-wizard-dev/storefront/internal/common"
)

type fakeReply struct {
	result any
	code   int
	err    error
}

// fakeClient answers by "METHOD path" and records every request.
type fakeClient struct {
	mu      sync.Mutex
	token   string
	cleared bool
	replies map[string]fakeReply
	reqs    []*api.Request
}

func newFakeClient() *fakeClient {
	return &fakeClient{replies: make(map[string]fakeReply)}
}

func (f *fakeClient) on(method, path string, r fakeReply) {
	f.mu.Lock()
	f.replies[method+" "+path] = r
	f.mu.Unlock()
}

func (f *fakeClient) Do(_ context.Context, req *api.Request) (*api.Response, error) {
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	r, ok := f.replies[req.Method+" "+req.Path]
	f.mu.Unlock()

	if !ok {
		return nil, &api.ResponseError{StatusCode: http.StatusNotFound, Request: req}
	}
	if r.err != nil {
		return nil, r.err
	}
	code := r.code
	if code == 0 {
		code = common.CodeSuccess
	}
	body, err := json.Marshal(map[string]any{"code": code, "message": "", "result": r.result})
	if err != nil {
		return nil, err
	}
	return &api.Response{StatusCode: http.StatusOK, Body: body}, nil
}

func (f *fakeClient) SaveToken(_ context.Context, token string) error {
	f.mu.Lock()
	f.token = token
	f.mu.Unlock()
	return nil
}

func (f *fakeClient) ClearToken(context.Context) error {
	f.mu.Lock()
	f.token = ""
	f.cleared = true
	f.mu.Unlock()
	return nil
}

func (f *fakeClient) Token(context.Context) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, f.token != ""
}

func (f *fakeClient) Endpoints() api.Endpoints { return api.DefaultEndpoints() }

func (f *fakeClient) last() *api.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.reqs) == 0 {
		return nil
	}
	return f.reqs[len(f.reqs)-1]
}

func (f *fakeClient) count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.reqs {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}
