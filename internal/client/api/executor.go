package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/genius-wizard-dev/storefront/internal/common"
)

const (
	defaultRequestTimeout = 15 * time.Second
	maxResponseBody       = 8 << 20
)

// Executor performs exactly one HTTP exchange for req.
//
// It returns a *Response for 2xx replies, a *ResponseError for any other
// status and a *TransportError when no reply was received.
type Executor interface {
	Execute(ctx context.Context, req *Request) (*Response, error)
}

// HTTPExecutor is the net/http implementation of Executor.
type HTTPExecutor struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
}

// NewHTTPExecutor returns an executor rooted at baseURL. A zero timeout
// selects the default per-call timeout.
func NewHTTPExecutor(baseURL string, timeout time.Duration) *HTTPExecutor {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &HTTPExecutor{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		timeout: timeout,
		client:  &http.Client{},
	}
}

func (e *HTTPExecutor) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}

	target := e.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, &TransportError{Request: req, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if httpReq.Header.Get(common.RequestIDHeader) == "" {
		httpReq.Header.Set(common.RequestIDHeader, uuid.NewString())
	}

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Request: req, Err: err}
	}
	defer resp.Body.Close() // nolint:errcheck

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, &TransportError{Request: req, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ResponseError{StatusCode: resp.StatusCode, Body: data, Request: req}
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

func encodeBody(v any) (io.Reader, error) {
	switch b := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(b), nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(data), nil
	}
}
