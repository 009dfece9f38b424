package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/genius-wizard-dev/storefront/internal/client/api"
	"github.com/genius-wizard-dev/storefront/internal/client/storefront"
	"github.com/genius-wizard-dev/storefront/internal/logging"
)

// Session exposes the stored token state.
type Session interface {
	Token(ctx context.Context) (string, bool)
}

// Checkouter places an order for the current cart.
type Checkouter interface {
	Run(ctx context.Context, addressID, discountCode string) (*storefront.Order, error)
}

// Services bundles what the shell talks to.
type Services struct {
	Session  Session
	Auth     storefront.AuthService
	Catalog  storefront.CatalogService
	Cart     storefront.CartService
	Orders   storefront.OrderService
	Profile  storefront.ProfileService
	Checkout Checkouter
}

// NewServices wires every service to c.
func NewServices(c *api.Client, log logging.Logger) Services {
	return Services{
		Session:  c,
		Auth:     storefront.NewAuthService(c),
		Catalog:  storefront.NewCatalogService(c),
		Cart:     storefront.NewCartService(c),
		Orders:   storefront.NewOrderService(c),
		Profile:  storefront.NewProfileService(c),
		Checkout: storefront.NewCheckout(c, log),
	}
}

type App struct {
	svc    Services
	reader *bufio.Reader
	out    io.Writer
	log    logging.Logger

	mu       sync.Mutex
	userName string
	loggedIn bool
}

func NewApp(svc Services, in io.Reader, out io.Writer, log logging.Logger) *App {
	if log == nil {
		log = logging.NewNop()
	}
	return &App{svc: svc, reader: bufio.NewReader(in), out: out, log: log}
}

func (a *App) isLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loggedIn
}

func (a *App) setSession(userName string, loggedIn bool) {
	a.mu.Lock()
	a.userName, a.loggedIn = userName, loggedIn
	a.mu.Unlock()
}

func (a *App) status() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch {
	case !a.loggedIn:
		return "(guest)"
	case a.userName != "":
		return "(" + a.userName + ")"
	default:
		return "(logged in)"
	}
}

// SessionExpired is the api client's session-invalid hook. It may run on
// any goroutine.
func (a *App) SessionExpired() {
	if !a.isLoggedIn() {
		return
	}
	a.setSession("", false)
	fmt.Fprintln(a.out, "\nSession expired, please log in again.") // nolint:errcheck
}

// Restore picks up a token left by a previous run.
func (a *App) Restore(ctx context.Context) {
	if _, ok := a.svc.Session.Token(ctx); !ok {
		return
	}
	p, err := a.svc.Profile.GetProfile(ctx)
	if err != nil {
		a.log.Debug(ctx, "stored session not usable", "error", err)
		a.checkSession(ctx, err)
		return
	}
	a.setSession(p.Username, true)
	a.printf("Welcome back, %s.\n", p.Username)
}

// Run reads commands from in until EOF or exit.
func (a *App) Run(ctx context.Context) {
	printlnFn("Storefront CLI (type 'help' for commands)")
	a.Restore(ctx)
	runREPL(ctx, a, a.status, a.reader)
}

// checkSession drops the local session when err shows the token is gone.
func (a *App) checkSession(ctx context.Context, err error) {
	if !errors.Is(err, api.ErrUnauthorized) && !errors.Is(err, api.ErrRefreshFailed) {
		return
	}
	if _, ok := a.svc.Session.Token(ctx); ok {
		return
	}
	if a.isLoggedIn() {
		a.setSession("", false)
		a.println("Session expired, please log in again.")
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...) // nolint:errcheck
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...) // nolint:errcheck
}
