package devserver

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/genius-wizard-dev/storefront/internal/common"
	"github.com/genius-wizard-dev/storefront/internal/pricing"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ProductQuery struct {
	CategoryID string `query:"categoryId"`
	Search     string `query:"search"`
	Page       int    `query:"page" validate:"gte=0"`
	Size       int    `query:"size" validate:"gte=0"`
}

type PlaceOrderRequest struct {
	AddressID     string          `json:"addressId" validate:"required"`
	DiscountCode  string          `json:"discountCode"`
	Items         []OrderLine     `json:"items" validate:"required,min=1,dive"`
	ExpectedTotal decimal.Decimal `json:"expectedTotal"`
}

type cartLine struct {
	productID string
	quantity  int
}

// Shop holds the catalog, stock, discounts and every user's cart,
// addresses and orders.
type Shop struct {
	now func() time.Time

	mu         sync.RWMutex
	categories []Category
	products   map[string]Product
	productIDs []string
	stock      map[string]int
	discounts  map[string]Discount
	carts      map[string][]cartLine
	addresses  map[string][]Address
	orders     map[string][]Order
}

func NewShop(now func() time.Time) *Shop {
	if now == nil {
		now = time.Now
	}
	return &Shop{
		now:       now,
		products:  make(map[string]Product),
		stock:     make(map[string]int),
		discounts: make(map[string]Discount),
		carts:     make(map[string][]cartLine),
		addresses: make(map[string][]Address),
		orders:    make(map[string][]Order),
	}
}

// AddCategory and the other Add* helpers load catalog data.
func (s *Shop) AddCategory(c Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, c)
}

func (s *Shop) AddProduct(p Product, stock int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; !ok {
		s.productIDs = append(s.productIDs, p.ID)
	}
	s.products[p.ID] = p
	s.stock[p.ID] = stock
}

func (s *Shop) AddDiscount(d Discount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.Code = strings.ToUpper(d.Code)
	s.discounts[d.Code] = d
}

func (s *Shop) Categories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categories)
}

// Products lists the catalog in insertion order. Search matches name or
// description, ignoring case.
func (s *Shop) Products(q ProductQuery) Page[Product] {
	page := max(q.Page, 1)
	size := q.Size
	if size <= 0 {
		size = defaultPageSize
	}
	size = min(size, maxPageSize)
	search := strings.ToLower(q.Search)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []Product
	for _, id := range s.productIDs {
		p := s.products[id]
		if q.CategoryID != "" && p.CategoryID != q.CategoryID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		matched = append(matched, p)
	}

	out := Page[Product]{Items: []Product{}, Page: page, Size: size, Total: len(matched)}
	if from := (page - 1) * size; from < len(matched) {
		out.Items = matched[from:min(from+size, len(matched))]
	}
	return out
}

func (s *Shop) Product(id string) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return Product{}, fmt.Errorf("product %s: %w", id, common.ErrNotFound)
	}
	return p, nil
}

func (s *Shop) Stock(productID string) (Stock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.products[productID]; !ok {
		return Stock{}, fmt.Errorf("product %s: %w", productID, common.ErrNotFound)
	}
	return Stock{ProductID: productID, Available: s.stock[productID]}, nil
}

// Discount looks a code up ignoring case. Expired codes are still returned.
func (s *Shop) Discount(code string) (Discount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.discounts[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Discount{}, fmt.Errorf("discount %s: %w", code, common.ErrNotFound)
	}
	return d, nil
}

func (s *Shop) Cart(userID string) Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cartLocked(userID)
}

// AddItem adds quantity of a product to the cart, merging with an
// existing line.
func (s *Shop) AddItem(userID, productID string, quantity int) (Cart, error) {
	if quantity <= 0 {
		return Cart{}, ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[productID]; !ok {
		return Cart{}, fmt.Errorf("product %s: %w", productID, common.ErrNotFound)
	}

	lines := s.carts[userID]
	if i := lineIndex(lines, productID); i >= 0 {
		lines[i].quantity += quantity
	} else {
		s.carts[userID] = append(lines, cartLine{productID: productID, quantity: quantity})
	}
	return s.cartLocked(userID), nil
}

// SetItem replaces the quantity of a line already in the cart.
func (s *Shop) SetItem(userID, productID string, quantity int) (Cart, error) {
	if quantity <= 0 {
		return Cart{}, ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	i := lineIndex(lines, productID)
	if i < 0 {
		return Cart{}, fmt.Errorf("cart item %s: %w", productID, common.ErrNotFound)
	}
	lines[i].quantity = quantity
	return s.cartLocked(userID), nil
}

func (s *Shop) RemoveItem(userID, productID string) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	i := lineIndex(lines, productID)
	if i < 0 {
		return Cart{}, fmt.Errorf("cart item %s: %w", productID, common.ErrNotFound)
	}
	s.carts[userID] = slices.Delete(lines, i, i+1)
	return s.cartLocked(userID), nil
}

func (s *Shop) ClearCart(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}

// cartLocked prices the cart at current catalog prices.
func (s *Shop) cartLocked(userID string) Cart {
	lines := s.carts[userID]
	cart := Cart{Items: make([]CartItem, 0, len(lines))}
	for _, l := range lines {
		p := s.products[l.productID]
		cart.Items = append(cart.Items, CartItem{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  l.quantity,
		})
	}
	return cart
}

func lineIndex(lines []cartLine, productID string) int {
	return slices.IndexFunc(lines, func(l cartLine) bool { return l.productID == productID })
}

func (s *Shop) Addresses(userID string) []Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.addresses[userID])
	if out == nil {
		out = []Address{}
	}
	return out
}

// AddAddress stores a new address. The first address, or one flagged as
// default, becomes the only default.
func (s *Shop) AddAddress(userID string, a Address) Address {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.addresses[userID]
	a.ID = uuid.NewString()
	if len(list) == 0 {
		a.Default = true
	}
	if a.Default {
		for i := range list {
			list[i].Default = false
		}
	}
	s.addresses[userID] = append(list, a)
	return a
}

// DeleteAddress removes an address. If it was the default, the oldest
// remaining address takes over.
func (s *Shop) DeleteAddress(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.addresses[userID]
	i := slices.IndexFunc(list, func(a Address) bool { return a.ID == id })
	if i < 0 {
		return fmt.Errorf("address %s: %w", id, common.ErrNotFound)
	}
	wasDefault := list[i].Default
	list = slices.Delete(list, i, i+1)
	if wasDefault && len(list) > 0 {
		list[0].Default = true
	}
	s.addresses[userID] = list
	return nil
}

// PlaceOrder prices the lines at current catalog prices, applies the
// discount, and accepts the order only if the total matches what the
// client expected and every product is in stock. Stock is taken on success.
func (s *Shop) PlaceOrder(userID string, req PlaceOrderRequest) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !slices.ContainsFunc(s.addresses[userID], func(a Address) bool { return a.ID == req.AddressID }) {
		return Order{}, fmt.Errorf("address %s: %w", req.AddressID, common.ErrNotFound)
	}

	now := s.now()
	order := Order{
		ID:        uuid.NewString(),
		Status:    OrderStatusPlaced,
		AddressID: req.AddressID,
		Items:     make([]OrderLine, 0, len(req.Items)),
		CreatedAt: now.UTC(),
	}

	wanted := make(map[string]int, len(req.Items))
	subtotal := decimal.Zero
	for _, it := range req.Items {
		if it.Quantity <= 0 {
			return Order{}, ErrInvalidQuantity
		}
		p, ok := s.products[it.ProductID]
		if !ok {
			return Order{}, fmt.Errorf("product %s: %w", it.ProductID, common.ErrNotFound)
		}
		wanted[p.ID] += it.Quantity
		subtotal = subtotal.Add(pricing.LineTotal(p.Price, it.Quantity))
		order.Items = append(order.Items, OrderLine{ProductID: p.ID, Quantity: it.Quantity, UnitPrice: p.Price})
	}
	order.Subtotal = pricing.Round(subtotal)
	order.Discount = decimal.Zero

	if req.DiscountCode != "" {
		d, ok := s.discounts[strings.ToUpper(strings.TrimSpace(req.DiscountCode))]
		if !ok {
			return Order{}, fmt.Errorf("discount %s: %w", req.DiscountCode, common.ErrNotFound)
		}
		if off := d.rule().Amount(order.Subtotal, now); off.IsPositive() {
			order.Discount = off
			order.DiscountCode = d.Code
		}
	}
	order.Total = order.Subtotal.Sub(order.Discount)

	if !order.Total.Equal(req.ExpectedTotal) {
		return Order{}, fmt.Errorf("%w: expected %s, actual %s", ErrTotalMismatch,
			req.ExpectedTotal.StringFixed(pricing.Places), order.Total.StringFixed(pricing.Places))
	}

	for _, id := range slices.Sorted(maps.Keys(wanted)) {
		if avail := s.stock[id]; avail < wanted[id] {
			return Order{}, &StockError{ProductID: id, Requested: wanted[id], Available: avail}
		}
	}
	for id, n := range wanted {
		s.stock[id] -= n
	}

	s.orders[userID] = append(s.orders[userID], order)
	return order, nil
}

// Orders returns the user's orders, newest first.
func (s *Shop) Orders(userID string) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := slices.Clone(s.orders[userID])
	if out == nil {
		return []Order{}
	}
	slices.Reverse(out)
	return out
}
