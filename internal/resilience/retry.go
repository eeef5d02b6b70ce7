// Package resilience holds small retry primitives shared by the outbox
// queue and the optimistic-concurrency write paths.
package resilience

import (
	"context"
	"math/rand/v2"
	"time"
)

// Backoff describes an exponential backoff with jitter.
type Backoff struct {
	Initial    time.Duration
	Max        time.Duration
	Multiplier float64
	Jitter     float64
}

// DefaultBackoff returns the backoff used for outbox retries.
func DefaultBackoff() Backoff {
	return Backoff{
		Initial:    2 * time.Second,
		Max:        5 * time.Minute,
		Multiplier: 2.0,
		Jitter:     0.2,
	}
}

// Delay returns the delay before the given attempt (1-based).
func (b Backoff) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	delay := float64(b.Initial)
	for i := 1; i < attempt; i++ {
		delay *= b.Multiplier
		if delay >= float64(b.Max) {
			delay = float64(b.Max)
			break
		}
	}

	if b.Jitter > 0 {
		spread := delay * b.Jitter
		delay = delay - spread + rand.Float64()*2*spread
	}

	if delay > float64(b.Max) {
		delay = float64(b.Max)
	}
	return time.Duration(delay)
}

// RetryConflicts reruns fn while it reports a retryable conflict, up to
// maxAttempts. The shouldRetry predicate decides which errors qualify;
// anything else is returned immediately. Used for versioned document
// rewrites where a concurrent writer invalidates the loaded snapshot.
func RetryConflicts(ctx context.Context, maxAttempts int, shouldRetry func(error) bool, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err = ctx.Err(); err != nil {
			return err
		}
		err = fn(ctx)
		if err == nil || !shouldRetry(err) {
			return err
		}
	}
	return err
}
