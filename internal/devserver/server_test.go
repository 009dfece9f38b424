package devserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genius-wizard-dev/storefront/internal/common"
	"github.com/genius-wizard-dev/storefront/internal/logging"
)

type reply struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

func testConfig() *Config {
	cfg := NewConfig()
	cfg.Secret = "test-secret"
	cfg.AccessTTL = time.Minute
	cfg.RefreshWindow = time.Hour
	cfg.SeedUser = "demo"
	cfg.SeedPassword = "demo1234"
	return cfg
}

func newTestServer(t *testing.T) (*Server, *testClock) {
	t.Helper()
	clock := newTestClock()
	s, err := New(testConfig(), logging.NewNop(), WithClock(clock.Now))
	require.NoError(t, err)
	return s, clock
}

func call(t *testing.T, s *Server, method, path, token string, body any) (int, reply) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var r reply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r), rec.Body.String())
	return rec.Code, r
}

func result[T any](t *testing.T, r reply) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(r.Result, &v), string(r.Result))
	return v
}

func login(t *testing.T, s *Server) string {
	t.Helper()
	status, r := call(t, s, http.MethodPost, "/identity/auth/token", "", credentials{Username: "demo", Password: "demo1234"})
	require.Equal(t, http.StatusOK, status, r.Message)
	res := result[loginResult](t, r)
	require.True(t, res.Authenticated)
	require.NotEmpty(t, res.Token)
	return res.Token
}

func TestServer_Login(t *testing.T) {
	s, _ := newTestServer(t)
	login(t, s)

	status, r := call(t, s, http.MethodPost, "/identity/auth/token", "", credentials{Username: "demo", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, common.CodeUnauthenticated, r.Code)
	assert.Equal(t, "Invalid username or password", r.Message)

	status, r = call(t, s, http.MethodPost, "/identity/auth/token", "", credentials{Username: "demo"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, common.CodeInvalidRequest, r.Code)
	assert.Contains(t, r.Message, "password: is required")
}

func TestServer_Register(t *testing.T) {
	s, _ := newTestServer(t)

	req := RegisterRequest{Username: "alice", Password: "longenough", Email: "alice@example.com"}
	status, r := call(t, s, http.MethodPost, "/identity/users/registration", "", req)
	require.Equal(t, http.StatusCreated, status, r.Message)
	assert.Equal(t, common.CodeSuccess, r.Code)
	p := result[Profile](t, r)
	assert.Equal(t, "alice", p.Username)

	status, r = call(t, s, http.MethodPost, "/identity/users/registration", "", req)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, common.CodeConflict, r.Code)

	status, r = call(t, s, http.MethodPost, "/identity/users/registration", "",
		RegisterRequest{Username: "bob", Password: "short", Email: "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, r.Message, "email: must be a valid email")
	assert.Contains(t, r.Message, "password: must be at least 8")
}

func TestServer_ProtectedRoutesNeedToken(t *testing.T) {
	s, _ := newTestServer(t)

	for _, token := range []string{"", "garbage"} {
		status, r := call(t, s, http.MethodGet, "/cart/carts", token, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, common.CodeUnauthenticated, r.Code)
	}
}

func TestServer_UnknownRoute(t *testing.T) {
	s, _ := newTestServer(t)

	status, r := call(t, s, http.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, common.CodeNotFound, r.Code)
}

func TestServer_Catalog(t *testing.T) {
	s, _ := newTestServer(t)

	status, r := call(t, s, http.MethodGet, "/product/products?categoryId=books&size=5", "", nil)
	require.Equal(t, http.StatusOK, status)
	page := result[Page[Product]](t, r)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "p-book", page.Items[0].ID)
	assert.Equal(t, 5, page.Size)

	status, r = call(t, s, http.MethodGet, "/product/products?page=x", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, common.CodeInvalidRequest, r.Code)

	status, r = call(t, s, http.MethodGet, "/product/products/p-kettle", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Gooseneck kettle", result[Product](t, r).Name)

	status, _ = call(t, s, http.MethodGet, "/product/products/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, r = call(t, s, http.MethodGet, "/product/categories", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, result[[]Category](t, r), 3)

	status, r = call(t, s, http.MethodGet, "/inventory/inventories/p-book", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 3, result[Stock](t, r).Available)
}

func TestServer_Discounts(t *testing.T) {
	s, _ := newTestServer(t)
	token := login(t, s)

	status, r := call(t, s, http.MethodGet, "/discount/discounts/save10", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "SAVE10", result[Discount](t, r).Code)

	status, r = call(t, s, http.MethodGet, "/discount/discounts/BOGUS", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, common.CodeNotFound, r.Code)
}

func TestServer_CartAndOrder(t *testing.T) {
	s, _ := newTestServer(t)
	token := login(t, s)

	status, r := call(t, s, http.MethodPost, "/cart/carts/items", token, cartItemRequest{ProductID: "p-filters", Quantity: 2})
	require.Equal(t, http.StatusOK, status, r.Message)
	status, r = call(t, s, http.MethodPut, "/cart/carts/items/p-filters", token, map[string]int{"quantity": 3})
	require.Equal(t, http.StatusOK, status, r.Message)
	cart := result[Cart](t, r)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	status, r = call(t, s, http.MethodPost, "/cart/carts/items", token, cartItemRequest{ProductID: "p-filters", Quantity: 0})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, common.CodeInvalidRequest, r.Code)

	status, r = call(t, s, http.MethodGet, "/profile/addresses", token, nil)
	require.Equal(t, http.StatusOK, status)
	addrs := result[[]Address](t, r)
	require.Len(t, addrs, 1)

	place := PlaceOrderRequest{
		AddressID:     addrs[0].ID,
		DiscountCode:  "FIVEOFF",
		Items:         []OrderLine{{ProductID: "p-filters", Quantity: 3}, {ProductID: "p-book", Quantity: 1}},
		ExpectedTotal: dec("40.05"),
	}

	status, r = call(t, s, http.MethodPost, "/order/orders", token, place)
	require.Equal(t, http.StatusCreated, status, r.Message)
	order := result[Order](t, r)
	assert.True(t, order.Subtotal.Equal(dec("45.05")))
	assert.True(t, order.Total.Equal(dec("40.05")))
	assert.Equal(t, "FIVEOFF", order.DiscountCode)

	place.ExpectedTotal = dec("45.05")
	status, r = call(t, s, http.MethodPost, "/order/orders", token, place)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, common.CodeConflict, r.Code)

	place.DiscountCode = ""
	place.Items = []OrderLine{{ProductID: "p-book", Quantity: 3}}
	place.ExpectedTotal = dec("96")
	status, r = call(t, s, http.MethodPost, "/order/orders", token, place)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, common.CodeOutOfStock, r.Code)
	assert.Contains(t, r.Message, "p-book")

	status, r = call(t, s, http.MethodGet, "/order/orders", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, result[[]Order](t, r), 1)

	status, r = call(t, s, http.MethodDelete, "/cart/carts", token, nil)
	require.Equal(t, http.StatusOK, status, r.Message)
	status, r = call(t, s, http.MethodGet, "/cart/carts", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, result[Cart](t, r).Items)
}

func TestServer_Profile(t *testing.T) {
	s, _ := newTestServer(t)
	token := login(t, s)

	status, r := call(t, s, http.MethodGet, "/profile/users/my-profile", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "demo@example.com", result[Profile](t, r).Email)

	status, r = call(t, s, http.MethodPut, "/profile/users/my-profile", token, ProfileUpdate{LastName: "Tester"})
	require.Equal(t, http.StatusOK, status, r.Message)
	assert.Equal(t, "Tester", result[Profile](t, r).LastName)

	status, r = call(t, s, http.MethodPost, "/profile/addresses", token, Address{Recipient: "R", Phone: "1", Street: "S", City: "C", Country: "NL", Default: true})
	require.Equal(t, http.StatusCreated, status, r.Message)
	added := result[Address](t, r)
	assert.True(t, added.Default)

	status, r = call(t, s, http.MethodPost, "/profile/addresses", token, Address{Recipient: "R"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, r.Message, "street: is required")

	status, _ = call(t, s, http.MethodDelete, "/profile/addresses/"+added.ID, token, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = call(t, s, http.MethodDelete, "/profile/addresses/"+added.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestServer_RefreshIntrospectLogout(t *testing.T) {
	s, clock := newTestServer(t)
	token := login(t, s)

	clock.Advance(2 * time.Minute)

	status, _ := call(t, s, http.MethodGet, "/cart/carts", token, nil)
	require.Equal(t, http.StatusUnauthorized, status)

	status, r := call(t, s, http.MethodPost, "/identity/auth/introspect", "", tokenRequest{Token: token})
	require.Equal(t, http.StatusOK, status)
	assert.False(t, result[introspectResult](t, r).Valid)

	status, r = call(t, s, http.MethodPost, "/identity/auth/refresh", "", tokenRequest{Token: token})
	require.Equal(t, http.StatusOK, status, r.Message)
	fresh := result[refreshResult](t, r).Token
	require.NotEmpty(t, fresh)

	status, _ = call(t, s, http.MethodGet, "/cart/carts", fresh, nil)
	require.Equal(t, http.StatusOK, status)

	status, r = call(t, s, http.MethodPost, "/identity/auth/refresh", "", tokenRequest{Token: token})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, common.CodeUnauthenticated, r.Code)

	status, r = call(t, s, http.MethodPost, "/identity/auth/introspect", "", tokenRequest{Token: fresh})
	require.Equal(t, http.StatusOK, status)
	assert.True(t, result[introspectResult](t, r).Valid)

	status, r = call(t, s, http.MethodPost, "/identity/auth/logout", "", tokenRequest{Token: fresh})
	require.Equal(t, http.StatusOK, status, r.Message)

	status, _ = call(t, s, http.MethodGet, "/cart/carts", fresh, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestServer_KeepsRequestID(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/product/categories", nil)
	req.Header.Set(common.RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(common.RequestIDHeader))

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/product/categories", nil))
	assert.NotEmpty(t, rec.Header().Get(common.RequestIDHeader))
}

func TestNew_GeneratesSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Secret = ""
	cfg.SeedUser = ""

	s, err := New(cfg, logging.NewNop())
	require.NoError(t, err)

	token, err := s.tokens.Issue("u1", "x")
	require.NoError(t, err)
	_, err = s.tokens.Verify(token)
	require.NoError(t, err)
}
