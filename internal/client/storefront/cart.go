package storefront

import (
	"context"
	"fmt"
	"net/http"

	"github.com/genius-wizard-dev/storefront/internal/client/api"
)

type CartService interface {
	GetCart(ctx context.Context) (*Cart, error)
	AddItem(ctx context.Context, productID string, quantity int) (*Cart, error)
	UpdateItem(ctx context.Context, productID string, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, productID string) (*Cart, error)
	ClearCart(ctx context.Context) error
}

type cartService struct {
	client Client
}

func NewCartService(c Client) CartService {
	return &cartService{client: c}
}

type quantityBody struct {
	ProductID string `json:"productId,omitempty"`
	Quantity  int    `json:"quantity"`
}

func (s *cartService) GetCart(ctx context.Context) (*Cart, error) {
	return s.cartCall(ctx, "get cart", api.NewRequest(http.MethodGet, "/cart/carts", nil))
}

func (s *cartService) AddItem(ctx context.Context, productID string, quantity int) (*Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	req := api.NewRequest(http.MethodPost, "/cart/carts/items", quantityBody{ProductID: productID, Quantity: quantity})
	return s.cartCall(ctx, "add item", req)
}

func (s *cartService) UpdateItem(ctx context.Context, productID string, quantity int) (*Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	req := api.NewRequest(http.MethodPut, "/cart/carts/items/"+escape(productID), quantityBody{Quantity: quantity})
	return s.cartCall(ctx, "update item", req)
}

func (s *cartService) RemoveItem(ctx context.Context, productID string) (*Cart, error) {
	req := api.NewRequest(http.MethodDelete, "/cart/carts/items/"+escape(productID), nil)
	return s.cartCall(ctx, "remove item", req)
}

func (s *cartService) ClearCart(ctx context.Context) error {
	if err := exec(ctx, s.client, api.NewRequest(http.MethodDelete, "/cart/carts", nil)); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (s *cartService) cartCall(ctx context.Context, op string, req *api.Request) (*Cart, error) {
	cart, err := call[Cart](ctx, s.client, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cart, nil
}
