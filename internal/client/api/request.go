package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// Endpoint identifies one of the unauthenticated routes. Requests are
// matched against the configured paths by exact value.
type Endpoint int

const (
	EndpointNone Endpoint = iota
	EndpointLogin
	EndpointRegister
	EndpointLogout
	EndpointRefresh
)

func (e Endpoint) String() string {
	switch e {
	case EndpointLogin:
		return "login"
	case EndpointRegister:
		return "register"
	case EndpointLogout:
		return "logout"
	case EndpointRefresh:
		return "refresh"
	default:
		return "none"
	}
}

// Endpoints holds the backend paths of the identity routes.
type Endpoints struct {
	Login      string `json:"login" validate:"required,startswith=/"`
	Register   string `json:"register" validate:"required,startswith=/"`
	Logout     string `json:"logout" validate:"required,startswith=/"`
	Refresh    string `json:"refresh" validate:"required,startswith=/"`
	Introspect string `json:"introspect" validate:"required,startswith=/"`
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		Login:      "/identity/auth/token",
		Register:   "/identity/users/registration",
		Logout:     "/identity/auth/logout",
		Refresh:    "/identity/auth/refresh",
		Introspect: "/identity/auth/introspect",
	}
}

func (e Endpoints) public() map[string]Endpoint {
	return map[string]Endpoint{
		normalizePath(e.Login):    EndpointLogin,
		normalizePath(e.Register): EndpointRegister,
		normalizePath(e.Logout):   EndpointLogout,
		normalizePath(e.Refresh):  EndpointRefresh,
	}
}

func normalizePath(p string) string {
	p, _, _ = strings.Cut(p, "?")
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

// Request is one logical outgoing call. Body is JSON-encoded unless it is
// a []byte, which is sent as is. Do sets the Authorization header itself.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Header http.Header

	// retried marks a replay so that a second 401 is not recovered again.
	retried bool
	// sentWith is the bearer token attached on the latest attempt.
	sentWith string
}

func NewRequest(method, path string, body any) *Request {
	return &Request{Method: method, Path: path, Body: body, Header: make(http.Header)}
}

// Retried reports whether the request has already been replayed.
func (r *Request) Retried() bool { return r.retried }

// Response is a successful (2xx) reply with its body fully read.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// JSON decodes the body into v.
func (r *Response) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}
