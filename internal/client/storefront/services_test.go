package storefront

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genius-wizard-dev/storefront/internal/client/api"
	"github.com/genius-wizard-dev/storefront/internal/common"
)

func TestAuthService_Login(t *testing.T) {
	fc := newFakeClient()
	fc.on(http.MethodPost, "/identity/auth/token", fakeReply{result: map[string]any{"token": "tok", "authenticated": true}})

	err := NewAuthService(fc).Login(context.Background(), "alice", "pw")
	require.NoError(t, err)

	tok, ok := fc.Token(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "tok", tok)
	assert.Equal(t, map[string]string{"username": "alice", "password": "pw"}, fc.last().Body)
}

func TestAuthService_LoginRejected(t *testing.T) {
	fc := newFakeClient()
	fc.on(http.MethodPost, "/identity/auth/token", fakeReply{err: &api.ResponseError{StatusCode: http.StatusUnauthorized}})

	err := NewAuthService(fc).Login(context.Background(), "alice", "bad")
	require.ErrorIs(t, err, api.ErrUnauthorized)

	_, ok := fc.Token(context.Background())
	assert.False(t, ok)
}

func TestAuthService_LoginNotAuthenticated(t *testing.T) {
	fc := newFakeClient()
	fc.on(http.MethodPost, "/identity/auth/token", fakeReply{result: map[string]any{"authenticated": false}})

	err := NewAuthService(fc).Login(context.Background(), "alice", "pw")
	require.ErrorIs(t, err, api.ErrUnauthorized)
}

func TestAuthService_Register(t *testing.T) {
	fc := newFakeClient()
	fc.on(http.MethodPost, "/identity/users/registration", fakeReply{result: Profile{ID: "u1", Username: "alice"}})

	p, err := NewAuthService(fc).Register(context.Background(), RegisterRequest{Username: "alice", Password: "pw", Email: "a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "u1", p.ID)
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("revokes and clears", func(t *testing.T) {
		fc := newFakeClient()
		fc.token = "tok"
		fc.on(http.MethodPost, "/identity/auth/logout", fakeReply{})

		require.NoError(t, NewAuthService(fc).Logout(context.Background()))
		assert.True(t, fc.cleared)
		assert.Equal(t, map[string]string{"token": "tok"}, fc.last().Body)
	})

	t.Run("clears even when the call fails", func(t *testing.T) {
		fc := newFakeClient()
		fc.token = "tok"
		fc.on(http.MethodPost, "/identity/auth/logout", fakeReply{err: &api.TransportError{Err: errors.New("down")}})

		err := NewAuthService(fc).Logout(context.Background())
		require.ErrorIs(t, err, api.ErrUnavailable)
		assert.True(t, fc.cleared)
		_, ok := fc.Token(context.Background())
		assert.False(t, ok)
	})

	t.Run("no token, no call", func(t *testing.T) {
		fc := newFakeClient()
		require.NoError(t, NewAuthService(fc).Logout(context.Background()))
		assert.Nil(t, fc.last())
		assert.True(t, fc.cleared)
	})
}

func TestCatalogService(t *testing.T) {
	fc := newFakeClient()
	fc.on(http.MethodGet, "/product/products", fakeReply{result: Page[Product]{
		Items: []Product{{ID: "p1", Name: "Mug", Price: dec("9.50")}},
		Page:  1, Size: 20, Total: 1,
	}})
	fc.on(http.MethodGet, "/product/products/p1", fakeReply{result: Product{ID: "p1", Price: dec("9.50")}})
	fc.on(http.MethodGet, "/product/categories", fakeReply{result: []Category{{ID: "c1", Name: "Kitchen"}}})

	svc := NewCatalogService(fc)
	ctx := context.Background()

	page, err := svc.ListProducts(ctx, ProductFilter{CategoryID: "c1", Search: "mug", Page: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.True(t, page.Items[0].Price.Equal(dec("9.5")))
	assert.Equal(t, "categoryId=c1&page=1&search=mug", fc.last().Query.Encode())

	p, err := svc.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)

	_, err = svc.GetProduct(ctx, "missing")
	require.ErrorIs(t, err, api.ErrNotFound)

	cats, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Category{{ID: "c1", Name: "Kitchen"}}, cats)
}

func TestCartService(t *testing.T) {
	fc := newFakeClient()
	cart := Cart{Items: []CartItem{{ProductID: "p1", Quantity: 2, UnitPrice: dec("3")}}}
	fc.on(http.MethodGet, "/cart/carts", fakeReply{result: cart})
	fc.on(http.MethodPost, "/cart/carts/items", fakeReply{result: cart})
	fc.on(http.MethodPut, "/cart/carts/items/p1", fakeReply{result: cart})
	fc.on(http.MethodDelete, "/cart/carts/items/p1", fakeReply{result: Cart{}})
	fc.on(http.MethodDelete, "/cart/carts", fakeReply{})

	svc := NewCartService(fc)
	ctx := context.Background()

	got, err := svc.AddItem(ctx, "p1", 2)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
	assert.Equal(t, quantityBody{ProductID: "p1", Quantity: 2}, fc.last().Body)

	_, err = svc.UpdateItem(ctx, "p1", 3)
	require.NoError(t, err)
	assert.Equal(t, quantityBody{Quantity: 3}, fc.last().Body)

	_, err = svc.AddItem(ctx, "p1", 0)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	got, err = svc.RemoveItem(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, got.Items)

	require.NoError(t, svc.ClearCart(ctx))
	assert.Equal(t, 1, fc.count(http.MethodDelete, "/cart/carts"))
}

func TestDiscountService_Lookup(t *testing.T) {
	fc := newFakeClient()
	fc.on(http.MethodGet, "/discount/discounts/SAVE10", fakeReply{result: Discount{Code: "SAVE10", Type: DiscountPercentage, Value: dec("10")}})
	svc := NewDiscountService(fc)

	d, err := svc.Lookup(context.Background(), " save10 ")
	require.NoError(t, err)
	assert.Equal(t, DiscountPercentage, d.Type)

	_, err = svc.Lookup(context.Background(), "NOPE")
	require.ErrorIs(t, err, ErrUnknownDiscount)

	_, err = svc.Lookup(context.Background(), "  ")
	require.ErrorIs(t, err, ErrUnknownDiscount)
}

func TestDiscountService_OtherErrorsAreNotUnknown(t *testing.T) {
	fc := newFakeClient()
	fc.on(http.MethodGet, "/discount/discounts/X", fakeReply{err: &api.ResponseError{StatusCode: http.StatusBadGateway}})

	_, err := NewDiscountService(fc).Lookup(context.Background(), "x")
	require.ErrorIs(t, err, api.ErrUnavailable)
	assert.NotErrorIs(t, err, ErrUnknownDiscount)
}

func TestOrderService(t *testing.T) {
	fc := newFakeClient()
	fc.on(http.MethodPost, "/order/orders", fakeReply{result: Order{ID: "o1", Status: "PENDING", Total: dec("12")}})
	fc.on(http.MethodGet, "/order/orders", fakeReply{result: []Order{{ID: "o1"}}})
	svc := NewOrderService(fc)

	o, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{AddressID: "a1"})
	require.NoError(t, err)
	assert.Equal(t, "o1", o.ID)

	list, err := svc.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestOrderService_APIError(t *testing.T) {
	fc := newFakeClient()
	fc.on(http.MethodPost, "/order/orders", fakeReply{code: common.CodeConflict})

	_, err := NewOrderService(fc).PlaceOrder(context.Background(), PlaceOrderRequest{})
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, common.CodeConflict, apiErr.Code)
}

func TestProfileService(t *testing.T) {
	fc := newFakeClient()
	fc.on(http.MethodGet, "/profile/users/my-profile", fakeReply{result: Profile{Username: "alice"}})
	fc.on(http.MethodPut, "/profile/users/my-profile", fakeReply{result: Profile{Username: "alice", FirstName: "Al"}})
	fc.on(http.MethodGet, "/profile/addresses", fakeReply{result: []Address{{ID: "a1", City: "Riga"}}})
	fc.on(http.MethodPost, "/profile/addresses", fakeReply{result: Address{ID: "a2", City: "Oslo"}})
	fc.on(http.MethodDelete, "/profile/addresses/a1", fakeReply{})

	svc := NewProfileService(fc)
	ctx := context.Background()

	p, err := svc.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)

	p, err = svc.UpdateProfile(ctx, ProfileUpdate{FirstName: "Al"})
	require.NoError(t, err)
	assert.Equal(t, "Al", p.FirstName)

	list, err := svc.ListAddresses(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	a, err := svc.AddAddress(ctx, Address{City: "Oslo"})
	require.NoError(t, err)
	assert.Equal(t, "a2", a.ID)

	require.NoError(t, svc.DeleteAddress(ctx, "a1"))
	require.ErrorIs(t, svc.DeleteAddress(ctx, "zz"), api.ErrNotFound)
}

func TestInventoryService(t *testing.T) {
	fc := newFakeClient()
	fc.on(http.MethodGet, "/inventory/inventories/p%2F1", fakeReply{result: Stock{ProductID: "p/1", Available: 3}})

	st, err := NewInventoryService(fc).Stock(context.Background(), "p/1")
	require.NoError(t, err)
	assert.Equal(t, 3, st.Available)
}
