package storefront

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/genius-wizard-dev/storefront/internal/client/api"
)

type DiscountService interface {
	Lookup(ctx context.Context, code string) (*Discount, error)
}

type discountService struct {
	client Client
}

func NewDiscountService(c Client) DiscountService {
	return &discountService{client: c}
}

// Lookup fetches a discount by code. Codes are case-insensitive; a code the
// backend does not know yields ErrUnknownDiscount.
func (s *discountService) Lookup(ctx context.Context, code string) (*Discount, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrUnknownDiscount
	}

	req := api.NewRequest(http.MethodGet, "/discount/discounts/"+escape(code), nil)
	d, err := call[Discount](ctx, s.client, req)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return nil, fmt.Errorf("%w %q", ErrUnknownDiscount, code)
		}
		return nil, fmt.Errorf("lookup discount %q: %w", code, err)
	}
	return &d, nil
}
