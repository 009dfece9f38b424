package devserver

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

type Cart struct {
	Items []CartItem `json:"items"`
}

type Discount struct {
	Code          string          `json:"code"`
	Type          pricing.Kind    `json:"type"`
	Value         decimal.Decimal `json:"value"`
	MinOrderValue decimal.Decimal `json:"minOrderValue"`
	ExpiresAt     *time.Time      `json:"expiresAt,omitempty"`
}

func (d Discount) rule() pricing.Rule {
	return pricing.Rule{Kind: d.Type, Value: d.Value, MinOrderValue: d.MinOrderValue, ExpiresAt: d.ExpiresAt}
}

type OrderLine struct {
	ProductID string          `json:"productId" validate:"required"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
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

const OrderStatusPlaced = "PLACED"

type Profile struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type Address struct {
	ID        string `json:"id"`
	Recipient string `json:"recipient" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	Street    string `json:"street" validate:"required"`
	City      string `json:"city" validate:"required"`
	Country   string `json:"country" validate:"required"`
	Default   bool   `json:"default"`
}

type Stock struct {
	ProductID string `json:"productId"`
	Available int    `json:"available"`
}
