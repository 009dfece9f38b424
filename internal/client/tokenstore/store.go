// Package tokenstore persists the storefront access token.
//
// The store owns a single slot (common.AccessTokenKey). Every other
// component reads the token through Get for the lifetime of one request
// and never caches it.
//
// Two implementations are provided:
//   - SQLiteStore: durable, survives process restarts (see Open).
//   - MemoryStore: process-local, for tests and ephemeral sessions.
package tokenstore

import "context"

// Store is the token persistence contract.
//
//   - Get reports ok == false when no token is stored.
//   - Set overwrites the current token.
//   - Clear removes it; a subsequent Get reports absent.
//   - ClearIf removes the token only if it still equals token and reports
//     whether it did. It lets an observer of a stale token invalidate the
//     session without undoing a newer token written concurrently.
type Store interface {
	Get(ctx context.Context) (token string, ok bool, err error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
	ClearIf(ctx context.Context, token string) (bool, error)
}
