package mirror

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrTransient tags failures worth retrying: timeouts, connection drops,
// 429 and 5xx responses. Everything else fails fast.
var ErrTransient = errors.New("transient failure")

// withRetry runs op up to cfg.Attempts times, doubling the backoff between
// attempts. Only ErrTransient failures are retried; context cancellation
// always wins.
func withRetry(ctx context.Context, cfg RetryConfig, log *zap.Logger, what string, op func() error) error {
	attempts := cfg.Attempts
	if attempts < 1 {
		attempts = 1
	}
	backoff := cfg.Backoff

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = op()
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrTransient) {
			return err
		}
		if attempt == attempts {
			break
		}
		log.Warn("retrying",
			zap.String("op", what),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return fmt.Errorf("%s: giving up after %d attempts: %w", what, attempts, err)
}
