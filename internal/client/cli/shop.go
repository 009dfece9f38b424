package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/genius-wizard-dev/storefront/internal/client/storefront"
)

const moneyFmt = 2

func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

func (a *App) Products(ctx context.Context, search string) error {
	page, err := a.svc.Catalog.ListProducts(ctx, storefront.ProductFilter{Search: search})
	if err != nil {
		return err
	}
	if len(page.Items) == 0 {
		a.println("No products found.")
		return nil
	}

	w := a.table()
	fmt.Fprintln(w, "ID\tNAME\tPRICE") // nolint:errcheck
	for _, p := range page.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Name, p.Price.StringFixed(moneyFmt)) // nolint:errcheck
	}
	return w.Flush()
}

func (a *App) Product(ctx context.Context, id string) error {
	p, err := a.svc.Catalog.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	a.printf("%s (%s)\n%s\nPrice: %s\n", p.Name, p.ID, p.Description, p.Price.StringFixed(moneyFmt))
	return nil
}

func (a *App) Cart(ctx context.Context) error {
	cart, err := a.svc.Cart.GetCart(ctx)
	if err != nil {
		a.checkSession(ctx, err)
		return err
	}
	return a.printCart(cart)
}

func (a *App) printCart(cart *storefront.Cart) error {
	if len(cart.Items) == 0 {
		a.println("Your cart is empty.")
		return nil
	}

	w := a.table()
	fmt.Fprintln(w, "PRODUCT\tNAME\tQTY\tPRICE\tLINE") // nolint:errcheck
	for _, it := range cart.Items {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", it.ProductID, it.Name, it.Quantity, // nolint:errcheck
			it.UnitPrice.StringFixed(moneyFmt), it.LineTotal().StringFixed(moneyFmt))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	t := storefront.PriceCart(*cart, nil)
	a.printf("Subtotal: %s\n", t.Subtotal.StringFixed(moneyFmt))
	return nil
}

func (a *App) AddToCart(ctx context.Context, productID string, qty int) error {
	cart, err := a.svc.Cart.AddItem(ctx, productID, qty)
	if err != nil {
		a.checkSession(ctx, err)
		return err
	}
	return a.printCart(cart)
}

func (a *App) RemoveFromCart(ctx context.Context, productID string) error {
	cart, err := a.svc.Cart.RemoveItem(ctx, productID)
	if err != nil {
		a.checkSession(ctx, err)
		return err
	}
	return a.printCart(cart)
}

// Checkout orders the cart, delivering to the default address. A new
// address is asked for when none is on file.
func (a *App) Checkout(ctx context.Context, discountCode string) error {
	addressID, err := a.deliveryAddress(ctx)
	if err != nil {
		a.checkSession(ctx, err)
		return err
	}

	order, err := a.svc.Checkout.Run(ctx, addressID, discountCode)
	if err != nil {
		a.checkSession(ctx, err)
		return err
	}

	a.printf("Order %s placed (%s). Total: %s", order.ID, order.Status, order.Total.StringFixed(moneyFmt))
	if order.Discount.IsPositive() {
		a.printf(", you saved %s", order.Discount.StringFixed(moneyFmt))
	}
	a.println()
	return nil
}

func (a *App) deliveryAddress(ctx context.Context) (string, error) {
	list, err := a.svc.Profile.ListAddresses(ctx)
	if err != nil {
		return "", err
	}
	for _, addr := range list {
		if addr.Default {
			return addr.ID, nil
		}
	}
	if len(list) > 0 {
		return list[0].ID, nil
	}

	a.println("No delivery address on file.")
	var addr storefront.Address
	fields := []struct {
		label string
		dst   *string
	}{
		{"Recipient", &addr.Recipient},
		{"Phone", &addr.Phone},
		{"Street", &addr.Street},
		{"City", &addr.City},
		{"Country", &addr.Country},
	}
	for _, f := range fields {
		if *f.dst, err = a.prompt(f.label); err != nil {
			return "", err
		}
	}
	addr.Default = true

	created, err := a.svc.Profile.AddAddress(ctx, addr)
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

func (a *App) Orders(ctx context.Context) error {
	orders, err := a.svc.Orders.ListOrders(ctx)
	if err != nil {
		a.checkSession(ctx, err)
		return err
	}
	if len(orders) == 0 {
		a.println("No orders yet.")
		return nil
	}

	w := a.table()
	fmt.Fprintln(w, "ORDER\tSTATUS\tITEMS\tTOTAL\tPLACED") // nolint:errcheck
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", o.ID, o.Status, len(o.Items), // nolint:errcheck
			o.Total.StringFixed(moneyFmt), o.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
