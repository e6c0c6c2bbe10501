// Package retry runs extractor calls with exponential backoff and jitter.
package retry

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"ytdlx/internal/services"
)

// Policy holds backoff settings for one retried operation.
type Policy struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64
	// JitterFraction spreads each delay by +/- this fraction (0.0-1.0).
	JitterFraction float64
}

// DefaultPolicy mirrors the extractor defaults in config.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:     3,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     10 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.2,
	}
}

// Classifier reports whether err is worth another attempt.
type Classifier func(error) bool

// Observer is told about every failed attempt that will be retried.
type Observer func(attempt int, delay time.Duration, err error)

// Do runs fn until it succeeds, fails permanently, or runs out of retries.
// A nil classifier falls back to services.IsRetryable.
func Do(ctx context.Context, p Policy, classify Classifier, observe Observer, fn func(context.Context) error) error {
	if classify == nil {
		classify = services.IsRetryable
	}
	if p.Multiplier < 1 {
		p.Multiplier = 1
	}

	var lastErr error
	backoff := p.InitialBackoff
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		if !classify(err) {
			return err
		}
		if attempt == p.MaxRetries {
			break
		}

		delay := backoff + jitter(backoff, p.JitterFraction)
		if p.MaxBackoff > 0 && delay > p.MaxBackoff {
			delay = p.MaxBackoff
		}
		if delay < 0 {
			delay = 0
		}
		if observe != nil {
			observe(attempt+1, delay, err)
		}

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}

		backoff = time.Duration(float64(backoff) * p.Multiplier)
		if p.MaxBackoff > 0 && backoff > p.MaxBackoff {
			backoff = p.MaxBackoff
		}
	}

	if p.MaxRetries == 0 {
		return lastErr
	}
	return fmt.Errorf("gave up after %d retries: %w", p.MaxRetries, lastErr)
}

// jitter returns a random duration in [-fraction*d, +fraction*d].
func jitter(d time.Duration, fraction float64) time.Duration {
	if fraction <= 0 || d <= 0 {
		return 0
	}
	spread := float64(d) * fraction
	return time.Duration((rand.Float64() - 0.5) * 2 * spread)
}
