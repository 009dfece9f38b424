package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/genius-wizard-dev/storefront/internal/client/api"
	"github.com/genius-wizard-dev/storefront/internal/client/cli"
	"github.com/genius-wizard-dev/storefront/internal/client/config"
	"github.com/genius-wizard-dev/storefront/internal/client/tokenstore"
	"github.com/genius-wizard-dev/storefront/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:], os.Getwd)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Logging())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, db, err := tokenstore.Open(ctx, cfg.TokenDBPath)
	if err != nil {
		return fmt.Errorf("open token store: %w", err)
	}
	defer db.Close() // nolint:errcheck

	var app *cli.App
	client, err := api.New(cfg.API(), store,
		api.WithLogger(log.With("component", "api")),
		api.WithSessionInvalidHook(func() { app.SessionExpired() }),
	)
	if err != nil {
		return err
	}
	defer client.Close() // nolint:errcheck

	app = cli.NewApp(cli.NewServices(client, log), os.Stdin, os.Stdout, log)
	app.Run(ctx)
	return nil
}
