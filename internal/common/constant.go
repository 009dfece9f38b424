// Package common contains constants and helpers shared by the storefront
// client and the development backend.
package common

const (
	// AccessTokenKey names the single durable slot holding the access token.
	AccessTokenKey = "access_token"

	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "
	RequestIDHeader     = "X-Request-ID"
)

// Response envelope codes. Every backend reply carries one of these in
// its "code" field; anything other than CodeSuccess is a failure.
const (
	CodeSuccess         = 1000
	CodeInvalidRequest  = 1001
	CodeUnauthenticated = 1006
	CodeForbidden       = 1007
	CodeNotFound        = 1008
	CodeConflict        = 1009
	CodeOutOfStock      = 1010
	CodeInternal        = 9999
)
