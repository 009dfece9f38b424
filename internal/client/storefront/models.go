package storefront

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/genius-wizard-dev/storefront/internal/pricing"
)

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	CategoryID  string          `json:"categoryId"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}

// ProductFilter narrows a product listing. Zero fields are not sent.
type ProductFilter struct {
	CategoryID string
	Search     string
	Page       int
	Size       int
}

// Page is one page of a paginated listing.
type Page[T any] struct {
	Items []T `json:"items"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Total int `json:"total"`
}

type CartItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

// LineTotal is the unit price times the quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return pricing.LineTotal(i.UnitPrice, i.Quantity)
}

type Cart struct {
	Items []CartItem `json:"items"`
}

// DiscountType selects how a discount's Value is applied.
type DiscountType string

const (
	DiscountPercentage = DiscountType(pricing.Percentage)
	DiscountFixed      = DiscountType(pricing.Fixed)
)

type Discount struct {
	Code          string          `json:"code"`
	Type          DiscountType    `json:"type"`
	Value         decimal.Decimal `json:"value"`
	MinOrderValue decimal.Decimal `json:"minOrderValue"`
	ExpiresAt     *time.Time      `json:"expiresAt,omitempty"`
}

// Totals is the priced view of a cart.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
	// Applied is set when the discount contributed to the totals.
	Applied bool
}

type OrderLine struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type PlaceOrderRequest struct {
	AddressID     string          `json:"addressId"`
	DiscountCode  string          `json:"discountCode,omitempty"`
	Items         []OrderLine     `json:"items"`
	ExpectedTotal decimal.Decimal `json:"expectedTotal"`
}

type Order struct {
	ID           string          `json:"id"`
	Status       string          `json:"status"`
	AddressID    string          `json:"addressId"`
	DiscountCode string          `json:"discountCode,omitempty"`
	Items        []OrderLine     `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type Profile struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type ProfileUpdate struct {
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

type Address struct {
	ID        string `json:"id,omitempty"`
	Recipient string `json:"recipient"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	City      string `json:"city"`
	Country   string `json:"country"`
	Default   bool   `json:"default"`
}

type Stock struct {
	ProductID string `json:"productId"`
	Available int    `json:"available"`
}

type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}
