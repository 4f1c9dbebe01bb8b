// Package retrylimit retries an operation with exponential backoff while a
// rate limiter caps how often attempts may start.
//
// Example usage:
//
//	policy := retrylimit.Policy{MaxAttempts: 5, InitialDelay: time.Second}
//	err := policy.Do(ctx, func(ctx context.Context) error {
//	    return session.Open()
//	})
package retrylimit

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"golang.org/x/time/rate"
)

// ErrExhausted is wrapped by the error returned when every attempt failed.
var ErrExhausted = errors.New("retry attempts exhausted")

// FatalError wraps errors that should stop retries immediately.
type FatalError struct {
	Err error
}

func (f *FatalError) Error() string { return f.Err.Error() }
func (f *FatalError) Unwrap() error { return f.Err }

// Fatal marks err as not worth retrying. Fatal(nil) is nil.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}

// IsFatal reports whether err was marked with Fatal.
func IsFatal(err error) bool {
	var f *FatalError
	return errors.As(err, &f)
}

// Policy configures Do.
type Policy struct {
	MaxAttempts  int           // Attempts before giving up (< 1 means 1)
	InitialDelay time.Duration // Delay after the first failure
	MaxDelay     time.Duration // Upper bound of the backoff (0 = unbounded)
	Multiplier   float64       // Backoff growth factor (< 1 means 2)
	Jitter       bool          // Add up to 25% random jitter to each delay

	// Limiter, when set, must grant a token before every attempt.
	Limiter *rate.Limiter
	// OnRetry is called after a failed attempt that will be retried.
	OnRetry func(attempt int, err error, wait time.Duration)
}

// DefaultPolicy suits reconnecting to a remote service at startup.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:  5,
		InitialDelay: time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2,
		Jitter:       true,
		Limiter:      rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// Do runs fn until it succeeds, returns a fatal error, ctx ends or the
// attempts run out.
func (p Policy) Do(ctx context.Context, fn func(context.Context) error) error {
	attempts := max(p.MaxAttempts, 1)
	multiplier := p.Multiplier
	if multiplier < 1 {
		multiplier = 2
	}

	delay := p.InitialDelay
	var last error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if p.Limiter != nil {
			if err := p.Limiter.Wait(ctx); err != nil {
				return err
			}
		}

		last = fn(ctx)
		if last == nil {
			return nil
		}
		if IsFatal(last) {
			return last
		}
		if attempt == attempts {
			break
		}

		wait := delay
		if p.Jitter {
			wait = addJitter(wait)
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt, last, wait)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay = time.Duration(float64(delay) * multiplier)
		if p.MaxDelay > 0 && delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}
	return fmt.Errorf("%w after %d attempts: %w", ErrExhausted, attempts, last)
}

// addJitter adds random jitter (0-25% of delay).
func addJitter(delay time.Duration) time.Duration {
	if delay < 4 {
		return delay
	}
	return delay + rand.N(delay/4)
}
