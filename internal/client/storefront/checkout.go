package storefront

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/genius-wizard-dev/storefront/internal/logging"
)

// maxStockChecks bounds concurrent inventory lookups during checkout.
const maxStockChecks = 4

// Checkout runs the multi-call order flow: load the cart, resolve the
// discount, verify stock, price, place the order and empty the cart.
type Checkout struct {
	carts     CartService
	discounts DiscountService
	inventory InventoryService
	orders    OrderService
	log       logging.Logger
}

func NewCheckout(c Client, log logging.Logger) *Checkout {
	if log == nil {
		log = logging.NewNop()
	}
	return &Checkout{
		carts:     NewCartService(c),
		discounts: NewDiscountService(c),
		inventory: NewInventoryService(c),
		orders:    NewOrderService(c),
		log:       log,
	}
}

// Run places an order for the current cart delivered to addressID. An empty
// discountCode means no discount; an unknown one fails the checkout before
// anything is ordered.
func (c *Checkout) Run(ctx context.Context, addressID, discountCode string) (*Order, error) {
	cart, err := c.carts.GetCart(ctx)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	var discount *Discount
	if discountCode != "" {
		if discount, err = c.discounts.Lookup(ctx, discountCode); err != nil {
			return nil, err
		}
	}

	if err := c.checkStock(ctx, cart.Items); err != nil {
		return nil, err
	}

	totals := PriceCart(*cart, discount)

	req := PlaceOrderRequest{
		AddressID:     addressID,
		Items:         make([]OrderLine, 0, len(cart.Items)),
		ExpectedTotal: totals.Total,
	}
	if totals.Applied {
		req.DiscountCode = discount.Code
	}
	for _, it := range cart.Items {
		req.Items = append(req.Items, OrderLine{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}

	order, err := c.orders.PlaceOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	// The order stands even if the cart cannot be emptied.
	if err := c.carts.ClearCart(ctx); err != nil {
		c.log.Warn(ctx, "order placed but cart not cleared", "order", order.ID, "error", err)
	}

	c.log.Info(ctx, "order placed", "order", order.ID, "total", order.Total.StringFixed(moneyPlaces))
	return order, nil
}

func (c *Checkout) checkStock(ctx context.Context, items []CartItem) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxStockChecks)

	for _, it := range items {
		g.Go(func() error {
			st, err := c.inventory.Stock(gctx, it.ProductID)
			if err != nil {
				return err
			}
			if st.Available < it.Quantity {
				return &StockError{ProductID: it.ProductID, Requested: it.Quantity, Available: st.Available}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("check stock: %w", err)
	}
	return nil
}
