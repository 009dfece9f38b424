package storefront

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/genius-wizard-dev/storefront/internal/client/api"
)

// AuthService covers the identity routes. All of them are public, so none
// of its calls ever enters token refresh.
type AuthService interface {
	Login(ctx context.Context, username, password string) error
	Register(ctx context.Context, r RegisterRequest) (*Profile, error)
	Logout(ctx context.Context) error
}

type authService struct {
	client Client
}

func NewAuthService(c Client) AuthService {
	return &authService{client: c}
}

type loginResult struct {
	Token         string `json:"token"`
	Authenticated bool   `json:"authenticated"`
}

// Login exchanges credentials for an access token and stores it.
func (s *authService) Login(ctx context.Context, username, password string) error {
	req := api.NewRequest(http.MethodPost, s.client.Endpoints().Login, map[string]string{
		"username": username,
		"password": password,
	})
	res, err := call[loginResult](ctx, s.client, req)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if !res.Authenticated || res.Token == "" {
		return fmt.Errorf("login: %w", api.ErrUnauthorized)
	}
	if err := s.client.SaveToken(ctx, res.Token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *authService) Register(ctx context.Context, r RegisterRequest) (*Profile, error) {
	req := api.NewRequest(http.MethodPost, s.client.Endpoints().Register, r)
	p, err := call[Profile](ctx, s.client, req)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &p, nil
}

// Logout revokes the stored token server-side. The local token is cleared
// whatever the outcome of the call.
func (s *authService) Logout(ctx context.Context) error {
	token, ok := s.client.Token(ctx)
	if !ok {
		return s.client.ClearToken(ctx)
	}

	req := api.NewRequest(http.MethodPost, s.client.Endpoints().Logout, map[string]string{"token": token})
	callErr := exec(ctx, s.client, req)
	if callErr != nil {
		callErr = fmt.Errorf("logout: %w", callErr)
	}
	return errors.Join(callErr, s.client.ClearToken(ctx))
}
