// Package devserver is a small in-memory implementation of the storefront
// backend. It serves the identity, catalog, cart, discount, order, profile
// and inventory routes the storefront client talks to, and issues short
// lived HS256 access tokens that can be refreshed inside a window.
//
// State lives in memory only and is lost on exit.
package devserver
