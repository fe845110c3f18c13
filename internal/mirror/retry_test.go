package mirror

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWithRetrySucceedsAfterTransient(t *testing.T) {
	cfg := RetryConfig{Attempts: 3, Backoff: time.Millisecond}
	calls := 0
	err := withRetry(context.Background(), cfg, zap.NewNop(), "fetch", func() error {
		calls++
		if calls < 3 {
			return fmt.Errorf("connection reset: %w", ErrTransient)
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestWithRetryGivesUp(t *testing.T) {
	cfg := RetryConfig{Attempts: 2, Backoff: time.Millisecond}
	calls := 0
	err := withRetry(context.Background(), cfg, zap.NewNop(), "fetch", func() error {
		calls++
		return fmt.Errorf("status 503: %w", ErrTransient)
	})
	require.Error(t, err)
	require.Equal(t, 2, calls)
	require.ErrorIs(t, err, ErrTransient)
}

func TestWithRetryPermanentFailsFast(t *testing.T) {
	cfg := RetryConfig{Attempts: 5, Backoff: time.Millisecond}
	calls := 0
	boom := errors.New("status 401")
	err := withRetry(context.Background(), cfg, zap.NewNop(), "fetch", func() error {
		calls++
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, calls)
}

func TestWithRetryHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := RetryConfig{Attempts: 3, Backoff: time.Minute}
	err := withRetry(ctx, cfg, zap.NewNop(), "fetch", func() error {
		return fmt.Errorf("slow: %w", ErrTransient)
	})
	require.ErrorIs(t, err, context.Canceled)
}
