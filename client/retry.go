package client

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// call invokes an RPC method, retrying transient failures with jittered
// exponential backoff. Rejections and cancellations surface immediately.
func (c *Client) call(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	attempts := c.cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	delay := c.cfg.RetryBaseDelay
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := c.sleep(ctx, jitter(delay)); err != nil {
				return err
			}
			delay *= 2
			if c.cfg.RetryMaxDelay > 0 && delay > c.cfg.RetryMaxDelay {
				delay = c.cfg.RetryMaxDelay
			}
		}
		err := mapRPCError(method, c.c.CallContext(ctx, result, method, args...))
		if err == nil {
			return nil
		}
		if !IsTransient(err) {
			return err
		}
		lastErr = err
		c.log.Debug("transient operator RPC failure",
			zap.String("method", method),
			zap.Int("attempt", attempt),
			zap.Error(err))
	}
	return lastErr
}

// jitter spreads retries of concurrent callers: [d/2, d).
func jitter(d time.Duration) time.Duration {
	if d <= 1 {
		return d
	}
	half := d / 2
	return half + time.Duration(rand.Int63n(int64(half)))
}

func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	timer := c.clock.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.Chan():
		return nil
	}
}
