package storefront

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/genius-wizard-dev/storefront/internal/pricing"
)

const moneyPlaces = pricing.Places

// PriceCart computes subtotal, discount and total for cart. A nil,
// expired or not yet reachable discount leaves the total at the subtotal.
func PriceCart(cart Cart, d *Discount) Totals {
	return priceCartAt(cart, d, time.Now())
}

func priceCartAt(cart Cart, d *Discount, now time.Time) Totals {
	subtotal := decimal.Zero
	for _, it := range cart.Items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	subtotal = pricing.Round(subtotal)

	t := Totals{Subtotal: subtotal, Discount: decimal.Zero, Total: subtotal}
	if d == nil {
		return t
	}

	off := d.rule().Amount(subtotal, now)
	t.Discount = off
	t.Total = subtotal.Sub(off)
	t.Applied = off.IsPositive()
	return t
}

func (d *Discount) rule() pricing.Rule {
	return pricing.Rule{
		Kind:          pricing.Kind(d.Type),
		Value:         d.Value,
		MinOrderValue: d.MinOrderValue,
		ExpiresAt:     d.ExpiresAt,
	}
}
