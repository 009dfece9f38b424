// Package pricing holds the money rules shared by the storefront client
// and the development backend, so both arrive at the same totals.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal places money is rounded to.
const Places = 2

var hundred = decimal.NewFromInt(100)

type Kind string

const (
	Percentage Kind = "PERCENTAGE"
	Fixed      Kind = "FIXED_AMOUNT"
)

// Rule describes a discount.
type Rule struct {
	Kind          Kind
	Value         decimal.Decimal
	MinOrderValue decimal.Decimal
	ExpiresAt     *time.Time
}

// Applies reports whether r can be used on an order worth subtotal at now.
func (r Rule) Applies(subtotal decimal.Decimal, now time.Time) bool {
	if r.Kind != Percentage && r.Kind != Fixed {
		return false
	}
	if !r.Value.IsPositive() {
		return false
	}
	if r.ExpiresAt != nil && !now.Before(*r.ExpiresAt) {
		return false
	}
	return subtotal.GreaterThanOrEqual(r.MinOrderValue)
}

// Amount is what r takes off subtotal: zero when it does not apply, never
// more than subtotal, rounded to Places.
func (r Rule) Amount(subtotal decimal.Decimal, now time.Time) decimal.Decimal {
	if !r.Applies(subtotal, now) {
		return decimal.Zero
	}

	off := r.Value
	if r.Kind == Percentage {
		off = subtotal.Mul(r.Value).Div(hundred)
	}
	if off.GreaterThan(subtotal) {
		off = subtotal
	}
	return Round(off)
}

// LineTotal is unit times qty.
func LineTotal(unit decimal.Decimal, qty int) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt(int64(qty)))
}

// Round rounds half away from zero to Places.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}
