// Command devapi runs the in-memory storefront backend for local work
// against the storefront CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/genius-wizard-dev/storefront/internal/devserver"
	"github.com/genius-wizard-dev/storefront/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := devserver.LoadConfig(os.Args[1:], os.Getwd)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Logging())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := devserver.New(cfg, log)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}
