package llm

import (
	"context"
	"math/rand"
	"time"
)

// RetryPolicy bounds repeated invocations of a chat call. Delays double
// from MinDelay up to MaxDelay with a little jitter.
type RetryPolicy struct {
	MaxAttempts int
	MinDelay    time.Duration
	MaxDelay    time.Duration

	// Notify, if set, is called before each backoff sleep with the
	// attempt that just failed.
	Notify func(attempt int, err error, delay time.Duration)

	// Sleep is a test seam; nil means time.Sleep.
	Sleep func(time.Duration)
}

// DefaultRetryPolicy mirrors the production schedule: three attempts,
// backoff between 4s and 10s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		MinDelay:    4 * time.Second,
		MaxDelay:    10 * time.Second,
	}
}

// Do runs fn until it succeeds, fails with a non-retryable error, the
// context is done, or the attempt budget runs out. The last error is
// returned after exhaustion.
func (p RetryPolicy) Do(ctx context.Context, fn func() (string, error)) (string, error) {
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsRetryable(err) || attempt == attempts {
			break
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		delay := p.backoff(attempt)
		if p.Notify != nil {
			p.Notify(attempt, err, delay)
		}
		sleep(delay)
	}
	return "", lastErr
}

// backoff returns the delay after the given 1-based failed attempt.
func (p RetryPolicy) backoff(attempt int) time.Duration {
	delay := p.MinDelay
	if delay <= 0 {
		delay = time.Second
	}
	for i := 1; i < attempt; i++ {
		delay *= 2
		if p.MaxDelay > 0 && delay >= p.MaxDelay {
			delay = p.MaxDelay
			break
		}
	}
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	// Up to 10% jitter, never past the cap.
	jitter := time.Duration(rand.Int63n(int64(delay)/10 + 1))
	if p.MaxDelay > 0 && delay+jitter > p.MaxDelay {
		return p.MaxDelay
	}
	return delay + jitter
}
