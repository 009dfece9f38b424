package storefront

import (
	"context"
	"fmt"
	"net/http"

	"github.com/genius-wizard-dev/storefront/internal/client/api"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, r PlaceOrderRequest) (*Order, error)
	ListOrders(ctx context.Context) ([]Order, error)
}

type orderService struct {
	client Client
}

func NewOrderService(c Client) OrderService {
	return &orderService{client: c}
}

func (s *orderService) PlaceOrder(ctx context.Context, r PlaceOrderRequest) (*Order, error) {
	o, err := call[Order](ctx, s.client, api.NewRequest(http.MethodPost, "/order/orders", r))
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}
	return &o, nil
}

func (s *orderService) ListOrders(ctx context.Context) ([]Order, error) {
	orders, err := call[[]Order](ctx, s.client, api.NewRequest(http.MethodGet, "/order/orders", nil))
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}
