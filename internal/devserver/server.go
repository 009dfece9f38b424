package devserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/genius-wizard-dev/storefront/internal/common"
	"github.com/genius-wizard-dev/storefront/internal/logging"
)

const (
	shutdownTimeout = 5 * time.Second
	secretSize      = 32
)

type Server struct {
	cfg  *Config
	log  logging.Logger
	echo *echo.Echo

	tokens   *TokenManager
	identity *Identity
	shop     *Shop
}

type options struct {
	now func() time.Time
}

type Option func(*options)

// WithClock replaces the clock used for token times and order stamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New builds a seeded server. Nothing listens until Run.
func New(cfg *Config, log logging.Logger, opts ...Option) (*Server, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	secret := cfg.Secret
	if secret == "" {
		var err error
		if secret, err = common.MakeRandHexString(secretSize); err != nil {
			return nil, fmt.Errorf("generate token secret: %w", err)
		}
		log.Warn(context.Background(), "no token secret configured, tokens will not survive a restart")
	}

	tokens := NewTokenManager([]byte(secret), cfg.AccessTTL, cfg.RefreshWindow, o.now)
	s := &Server{
		cfg:      cfg,
		log:      log.With("module", "devserver"),
		tokens:   tokens,
		identity: NewIdentity(tokens),
		shop:     NewShop(o.now),
	}

	SeedCatalog(s.shop)
	if cfg.SeedUser != "" {
		if _, err := SeedUser(s.identity, s.shop, cfg.SeedUser, cfg.SeedPassword); err != nil {
			return nil, fmt.Errorf("seed user: %w", err)
		}
	}

	s.echo = s.newEcho()
	return s, nil
}

func (s *Server) newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = s.errorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator:    uuid.NewString,
		TargetHeader: common.RequestIDHeader,
	}))
	e.Use(middleware.BodyLimit("1M"))
	e.Use(s.requestLogger())

	s.registerRoutes(e)
	return e
}

// Handler exposes the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info(ctx, "starting server", "address", s.cfg.ListenAddr)
		errCh <- s.echo.Start(s.cfg.ListenAddr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info(ctx, "stopping server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}
