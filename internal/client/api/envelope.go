package api

import (
	"fmt"

	"github.com/genius-wizard-dev/storefront/internal/common"
)

// Envelope is the reply shape shared by every backend service.
type Envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Result  T      `json:"result"`
}

// DecodeResult unwraps the envelope in resp and returns its result, or an
// *APIError when the code is not common.CodeSuccess.
func DecodeResult[T any](resp *Response) (T, error) {
	var env Envelope[T]
	if err := resp.JSON(&env); err != nil {
		var zero T
		return zero, fmt.Errorf("decode response: %w", err)
	}
	if env.Code != common.CodeSuccess {
		var zero T
		return zero, &APIError{Code: env.Code, Message: env.Message}
	}
	return env.Result, nil
}

type tokenBody struct {
	Token string `json:"token"`
}

type refreshResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

type introspectResult struct {
	// Valid is a pointer so a missing field is not read as "invalid".
	Valid *bool `json:"valid"`
}
