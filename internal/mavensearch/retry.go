package mavensearch

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig returns three attempts starting at 500ms.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 500 * time.Millisecond,
		MaxWait:     5 * time.Second,
		Multiplier:  2.0,
	}
}

// do runs fn until it succeeds, fails permanently, or attempts run out.
func (r RetryConfig) do(ctx context.Context, fn func() error) error {
	attempts := max(r.MaxAttempts, 1)
	invalidRetried := false

	var lastErr error
	for attempt := range attempts {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !shouldRetry(err, &invalidRetried) || attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.backoff(attempt, err)):
		}
	}
	return lastErr
}

func shouldRetry(err error, invalidRetried *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrNotFound) {
		return false
	}

	var status *ErrUnexpectedStatus
	if errors.As(err, &status) {
		return status.Temporary()
	}

	// A garbled body gets one more chance.
	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		if *invalidRetried {
			return false
		}
		*invalidRetried = true
		return true
	}

	// Network errors.
	return true
}

func (r RetryConfig) backoff(attempt int, err error) time.Duration {
	var status *ErrUnexpectedStatus
	if errors.As(err, &status) && status.RetryAfter > 0 {
		if r.MaxWait > 0 {
			return min(status.RetryAfter, r.MaxWait)
		}
		return status.RetryAfter
	}

	mult := r.Multiplier
	if mult <= 0 {
		mult = 2
	}
	wait := float64(r.InitialWait) * math.Pow(mult, float64(attempt))
	if r.MaxWait > 0 && wait > float64(r.MaxWait) {
		wait = float64(r.MaxWait)
	}

	// ±20% jitter.
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
