// Package api is the authenticated HTTP client every storefront feature
// talks to the backend through.
//
// # Overview
//
// A request travels through three stages:
//  1. The auth interceptor attaches "Authorization: Bearer <token>" from the
//     token store, unless the request targets one of the public endpoints
//     (login, register, logout, refresh). For authenticated requests it also
//     starts a best-effort token introspection in the background.
//  2. The executor performs the HTTP call and turns non-2xx replies and
//     transport failures into typed errors. It never retries.
//  3. On a 401 the refresh coordinator exchanges the stale token for a new
//     one. Only one exchange is ever in flight: requests that fail while it
//     runs are queued and released, in arrival order, once it settles.
//     An "invalid" introspection verdict joins the same exchange.
//     Every request is replayed at most once.
//
// # Error Handling
//
// Errors match sentinels with errors.Is: ErrUnauthorized, ErrForbidden,
// ErrNotFound, ErrUnavailable, ErrRefreshFailed, ErrAPI. The concrete types
// ResponseError, TransportError, RefreshError and APIError carry the details.
//
// # Concurrency
//
// A Client is safe for concurrent use and is meant to be created once per
// process and shared.
package api
