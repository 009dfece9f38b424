package storefront

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/genius-wizard-dev/storefront/internal/client/api"
)

type CatalogService interface {
	ListProducts(ctx context.Context, f ProductFilter) (Page[Product], error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListCategories(ctx context.Context) ([]Category, error)
}

type catalogService struct {
	client Client
}

func NewCatalogService(c Client) CatalogService {
	return &catalogService{client: c}
}

func (f ProductFilter) query() url.Values {
	q := url.Values{}
	if f.CategoryID != "" {
		q.Set("categoryId", f.CategoryID)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Size > 0 {
		q.Set("size", strconv.Itoa(f.Size))
	}
	return q
}

func (s *catalogService) ListProducts(ctx context.Context, f ProductFilter) (Page[Product], error) {
	req := api.NewRequest(http.MethodGet, "/product/products", nil)
	req.Query = f.query()
	page, err := call[Page[Product]](ctx, s.client, req)
	if err != nil {
		return Page[Product]{}, fmt.Errorf("list products: %w", err)
	}
	return page, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*Product, error) {
	req := api.NewRequest(http.MethodGet, "/product/products/"+escape(id), nil)
	p, err := call[Product](ctx, s.client, req)
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return &p, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]Category, error) {
	req := api.NewRequest(http.MethodGet, "/product/categories", nil)
	cats, err := call[[]Category](ctx, s.client, req)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}
