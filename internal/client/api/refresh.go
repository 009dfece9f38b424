package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/genius-wizard-dev/storefront/internal/logging"
)

const defaultRefreshTimeout = 10 * time.Second

var errExchangeAborted = errors.New("token exchange aborted")

// settlement is what every waiter of one refresh cycle receives.
type settlement struct {
	token string
	err   error
}

// coordinator serialises token refreshes. While an exchange is in flight
// (refreshing == true) later callers queue up and are settled, in FIFO
// order, with the outcome of that single exchange. Only the release is
// ordered: each waiter replays on its own goroutine, so the replayed
// requests may reach the server in any order.
type coordinator struct {
	mu         sync.Mutex
	refreshing bool
	waiters    []chan settlement

	exchange func(ctx context.Context, stale string) (string, error)
	log      logging.Logger
}

func newCoordinator(exchange func(ctx context.Context, stale string) (string, error), log logging.Logger) *coordinator {
	return &coordinator{exchange: exchange, log: log}
}

// refresh returns a token newer than stale. driver is true when this call
// performed the exchange itself rather than waiting on someone else's.
func (c *coordinator) refresh(ctx context.Context, stale string) (token string, driver bool, err error) {
	c.mu.Lock()
	if c.refreshing {
		ch := make(chan settlement, 1)
		c.waiters = append(c.waiters, ch)
		pos := len(c.waiters)
		c.mu.Unlock()

		c.log.Debug(ctx, "waiting for in-flight token refresh", "position", pos)

		select {
		case s := <-ch:
			return s.token, false, s.err
		case <-ctx.Done():
			// ch is buffered, the settling side never blocks on us.
			return "", false, ctx.Err()
		}
	}
	c.refreshing = true
	c.mu.Unlock()

	c.log.Info(ctx, "refreshing access token")

	s := settlement{err: errExchangeAborted}
	defer func() { c.settle(ctx, s) }()

	s.token, s.err = c.exchange(ctx, stale)
	return s.token, true, s.err
}

// settle flips back to idle and drains the queue. It runs exactly once per
// refresh cycle.
func (c *coordinator) settle(ctx context.Context, s settlement) {
	c.mu.Lock()
	waiters := c.waiters
	c.waiters = nil
	c.refreshing = false
	c.mu.Unlock()

	for _, ch := range waiters {
		ch <- s
	}

	if s.err != nil {
		c.log.Warn(ctx, "token refresh failed", "waiters", len(waiters), "error", s.err)
		return
	}
	c.log.Info(ctx, "token refresh settled", "waiters", len(waiters))
}

func (c *coordinator) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.waiters)
}

func (c *coordinator) inFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshing
}

// exchangeToken trades stale for a new token. When the store already holds
// a different token, an earlier exchange got there first and that token is
// returned as is. It runs detached from the driver's cancellation but
// bounded by the refresh timeout, since every queued request depends on its
// outcome.
//
// A failed exchange ends the session: the token that was sent is cleared so
// later requests stop presenting it, and the session-invalid hook fires.
func (c *Client) exchangeToken(ctx context.Context, stale string) (string, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.refreshTimeout)
	defer cancel()

	old, ok := c.currentToken(ctx)
	if !ok {
		return "", &RefreshError{Err: ErrNoToken}
	}
	if stale != "" && old != stale {
		c.log.Debug(ctx, "token already refreshed")
		return old, nil
	}

	token, err := c.tradeToken(ctx, old)
	if err != nil {
		c.endSession(ctx, old)
		return "", &RefreshError{Err: err}
	}
	return token, nil
}

func (c *Client) tradeToken(ctx context.Context, old string) (string, error) {
	req := NewRequest(http.MethodPost, c.endpoints.Refresh, tokenBody{Token: old})
	resp, err := c.exec.Execute(ctx, req)
	if err != nil {
		return "", err
	}

	res, err := DecodeResult[refreshResult](resp)
	if err != nil {
		return "", err
	}
	if res.Token == "" {
		return "", errors.New("refresh response carried no token")
	}
	if res.RefreshToken != "" {
		c.log.Debug(ctx, "refresh response carried a separate refresh token; ignoring it")
	}

	if err := c.store.Set(ctx, res.Token); err != nil {
		return "", fmt.Errorf("store refreshed token: %w", err)
	}
	return res.Token, nil
}
