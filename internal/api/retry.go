package api

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/abhisek/cogniq/internal/config"
)

// RetryTransport is a decorator that retries transient errors with
// exponential backoff and jitter.
type RetryTransport struct {
	inner  Transport
	config config.RetryConfig
}

// WithRetry wraps a Transport with retry logic.
func WithRetry(t Transport, cfg config.RetryConfig) Transport {
	return &RetryTransport{inner: t, config: cfg}
}

func (r *RetryTransport) Do(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	attempts := max(r.config.MaxAttempts, 1)

	for attempt := range attempts {
		resp, err := r.inner.Do(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return nil, err
		}

		// Last attempt, don't sleep.
		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.backoff(attempt)):
		}
	}

	return nil, lastErr
}

// shouldRetry reports whether err is transient. Only unavailability is;
// 4xx replies and auth failures will not change on retry.
func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var unavail *ErrUnavailable
	return errors.As(err, &unavail)
}

// backoff computes the wait duration for the given attempt.
func (r *RetryTransport) backoff(attempt int) time.Duration {
	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// Add ±20% jitter.
	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
