package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/genius-wizard-dev/storefront/internal/client/api"
	"github.com/genius-wizard-dev/storefront/internal/client/storefront"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. *App implements it.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Products(ctx context.Context, search string) error
	Product(ctx context.Context, id string) error
	Cart(ctx context.Context) error
	AddToCart(ctx context.Context, productID string, qty int) error
	RemoveFromCart(ctx context.Context, productID string) error
	Checkout(ctx context.Context, discountCode string) error
	Orders(ctx context.Context) error
}

const (
	helpGuest = "Available commands: register, login, products [search], product <id>, help, exit"
	helpUser  = "Available commands: products [search], product <id>, cart, add <productID> <qty>, " +
		"remove <productID>, checkout [discountCode], orders, whoami, logout, help, exit"
)

// runREPL reads one command per line from reader and dispatches it to a.
// It returns on EOF or "exit"/"quit". Command errors are printed and the
// loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("shop %s > ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpUser)
			} else {
				printlnFn(helpGuest)
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "products":
			cmdErr = a.Products(ctx, strings.Join(args, " "))

		case "product":
			if len(args) != 1 {
				printlnFn("Usage: product <id>")
				continue
			}
			cmdErr = a.Product(ctx, args[0])

		case "cart":
			cmdErr = a.Cart(ctx)

		case "add":
			if len(args) != 2 {
				printlnFn("Usage: add <productID> <qty>")
				continue
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil || qty <= 0 {
				printlnFn("Quantity must be a positive number")
				continue
			}
			cmdErr = a.AddToCart(ctx, args[0], qty)

		case "remove":
			if len(args) != 1 {
				printlnFn("Usage: remove <productID>")
				continue
			}
			cmdErr = a.RemoveFromCart(ctx, args[0])

		case "checkout":
			code := ""
			if len(args) > 0 {
				code = args[0]
			}
			cmdErr = a.Checkout(ctx, code)

		case "orders":
			cmdErr = a.Orders(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", describeError(cmdErr))
		}

		if err != nil {
			return
		}
	}
}

// describeError turns client errors into something a shopper can act on.
func describeError(err error) string {
	var (
		re    *api.ResponseError
		apiE  *api.APIError
		stock *storefront.StockError
	)
	switch {
	case errors.As(err, &stock):
		return fmt.Sprintf("only %d left of %s", stock.Available, stock.ProductID)
	case errors.Is(err, storefront.ErrUnknownDiscount):
		return "that discount code does not exist"
	case errors.Is(err, storefront.ErrEmptyCart):
		return "your cart is empty"
	case errors.Is(err, api.ErrRefreshFailed), errors.Is(err, api.ErrUnauthorized):
		return "you need to log in"
	case errors.As(err, &re) && re.Message() != "":
		return re.Message()
	case errors.As(err, &apiE) && apiE.Message != "":
		return apiE.Message
	case errors.Is(err, api.ErrUnavailable):
		return "the shop is unreachable, try again later"
	default:
		return err.Error()
	}
}
