package storefront

import (
	"context"
	"fmt"
	"net/http"

	"github.com/genius-wizard-dev/storefront/internal/client/api"
)

type ProfileService interface {
	GetProfile(ctx context.Context) (*Profile, error)
	UpdateProfile(ctx context.Context, u ProfileUpdate) (*Profile, error)
	ListAddresses(ctx context.Context) ([]Address, error)
	AddAddress(ctx context.Context, a Address) (*Address, error)
	DeleteAddress(ctx context.Context, id string) error
}

type profileService struct {
	client Client
}

func NewProfileService(c Client) ProfileService {
	return &profileService{client: c}
}

func (s *profileService) GetProfile(ctx context.Context) (*Profile, error) {
	p, err := call[Profile](ctx, s.client, api.NewRequest(http.MethodGet, "/profile/users/my-profile", nil))
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, u ProfileUpdate) (*Profile, error) {
	p, err := call[Profile](ctx, s.client, api.NewRequest(http.MethodPut, "/profile/users/my-profile", u))
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &p, nil
}

func (s *profileService) ListAddresses(ctx context.Context) ([]Address, error) {
	list, err := call[[]Address](ctx, s.client, api.NewRequest(http.MethodGet, "/profile/addresses", nil))
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	return list, nil
}

func (s *profileService) AddAddress(ctx context.Context, a Address) (*Address, error) {
	created, err := call[Address](ctx, s.client, api.NewRequest(http.MethodPost, "/profile/addresses", a))
	if err != nil {
		return nil, fmt.Errorf("add address: %w", err)
	}
	return &created, nil
}

func (s *profileService) DeleteAddress(ctx context.Context, id string) error {
	if err := exec(ctx, s.client, api.NewRequest(http.MethodDelete, "/profile/addresses/"+escape(id), nil)); err != nil {
		return fmt.Errorf("delete address %s: %w", id, err)
	}
	return nil
}
