package storefront

import (
	"context"
	"fmt"
	"net/http"

	"github.com/genius-wizard-dev/storefront/internal/client/api"
)

type InventoryService interface {
	Stock(ctx context.Context, productID string) (*Stock, error)
}

type inventoryService struct {
	client Client
}

func NewInventoryService(c Client) InventoryService {
	return &inventoryService{client: c}
}

func (s *inventoryService) Stock(ctx context.Context, productID string) (*Stock, error) {
	st, err := call[Stock](ctx, s.client, api.NewRequest(http.MethodGet, "/inventory/inventories/"+escape(productID), nil))
	if err != nil {
		return nil, fmt.Errorf("stock for %s: %w", productID, err)
	}
	return &st, nil
}
