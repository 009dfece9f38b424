package devserver

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrTotalMismatch   = errors.New("order total does not match current prices")
	ErrOutOfStock      = errors.New("insufficient stock")
)

// StockError names the product that cannot be supplied.
type StockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", e.ProductID, e.Requested, e.Available)
}

func (e *StockError) Is(target error) bool { return target == ErrOutOfStock }
