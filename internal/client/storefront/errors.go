package storefront

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrUnknownDiscount = errors.New("unknown discount code")
	ErrOutOfStock      = errors.New("out of stock")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// StockError reports a cart line that cannot be fulfilled.
type StockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("product %s: requested %d, available %d", e.ProductID, e.Requested, e.Available)
}

func (e *StockError) Is(target error) bool { return target == ErrOutOfStock }
