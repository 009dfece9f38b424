package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrUnavailable   = errors.New("server unavailable")
	ErrRefreshFailed = errors.New("token refresh failed")
	ErrNoToken       = errors.New("no access token to refresh")
	ErrAPI           = errors.New("api error")
	ErrClosed        = errors.New("client closed")
)

// ResponseError is returned for any non-2xx reply.
type ResponseError struct {
	StatusCode int
	Body       []byte
	Request    *Request
}

func (e *ResponseError) Error() string {
	msg := fmt.Sprintf("%s: %d %s", describe(e.Request), e.StatusCode, http.StatusText(e.StatusCode))
	if m := e.Message(); m != "" {
		msg += ": " + m
	}
	return msg
}

func (e *ResponseError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnavailable:
		return e.StatusCode >= http.StatusInternalServerError
	}
	return false
}

// Message extracts the "message" field of an enveloped error body, if any.
func (e *ResponseError) Message() string {
	var env struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(e.Body, &env); err != nil {
		return ""
	}
	return env.Message
}

// TransportError means no response was received at all.
type TransportError struct {
	Request *Request
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", describe(e.Request), e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrUnavailable }

// RefreshError is what queued requests receive when the exchange they were
// waiting on failed.
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("%v: %v", ErrRefreshFailed, e.Err)
}

func (e *RefreshError) Unwrap() error { return e.Err }

func (e *RefreshError) Is(target error) bool { return target == ErrRefreshFailed }

// APIError is a 2xx reply whose envelope code is not a success code.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}

func (e *APIError) Is(target error) bool { return target == ErrAPI }

func describe(r *Request) string {
	if r == nil {
		return "request"
	}
	return r.Method + " " + r.Path
}
