package retry

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ytdlx/internal/services"
)

func fastPolicy(retries int) Policy {
	return Policy{
		MaxRetries:     retries,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		Multiplier:     2.0,
	}
}

func TestDoSucceedsFirstTry(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), fastPolicy(3), nil, nil, func(context.Context) error {
		attempts++
		return nil
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if attempts != 1 {
		t.Fatalf("attempts = %d, want 1", attempts)
	}
}

func TestDoStopsOnPermanentError(t *testing.T) {
	attempts := 0
	permanent := services.Wrap(services.ErrNotFound, "extractor", "dump", "video unavailable", nil)
	err := Do(context.Background(), fastPolicy(3), nil, nil, func(context.Context) error {
		attempts++
		return permanent
	})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("Do() error = %v, want not found", err)
	}
	if attempts != 1 {
		t.Fatalf("attempts = %d, want 1", attempts)
	}
}

func TestDoRetriesTransientErrors(t *testing.T) {
	attempts := 0
	var observed []int
	err := Do(context.Background(), fastPolicy(3), nil, func(attempt int, _ time.Duration, _ error) {
		observed = append(observed, attempt)
	}, func(context.Context) error {
		attempts++
		if attempts < 3 {
			return services.Wrap(services.ErrTransient, "extractor", "dump", "http 503", nil)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d, want 3", attempts)
	}
	if len(observed) != 2 || observed[0] != 1 || observed[1] != 2 {
		t.Fatalf("observed = %v, want [1 2]", observed)
	}
}

func TestDoGivesUpAfterMaxRetries(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), fastPolicy(2), func(error) bool { return true }, nil, func(context.Context) error {
		attempts++
		return errors.New("flaky")
	})
	if err == nil || !strings.Contains(err.Error(), "gave up after 2 retries") {
		t.Fatalf("Do() error = %v", err)
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d, want 3", attempts)
	}
}

func TestDoZeroRetriesReturnsErrorUnwrapped(t *testing.T) {
	want := errors.New("once")
	err := Do(context.Background(), fastPolicy(0), func(error) bool { return true }, nil, func(context.Context) error {
		return want
	})
	if err != want {
		t.Fatalf("Do() error = %v, want %v", err, want)
	}
}

func TestDoHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := Policy{MaxRetries: 5, InitialBackoff: time.Hour, MaxBackoff: time.Hour, Multiplier: 2}
	attempts := 0
	err := Do(ctx, p, func(error) bool { return true }, func(int, time.Duration, error) { cancel() }, func(context.Context) error {
		attempts++
		return errors.New("flaky")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Do() error = %v, want context.Canceled", err)
	}
	if attempts != 1 {
		t.Fatalf("attempts = %d, want 1", attempts)
	}
}

func TestJitterBounds(t *testing.T) {
	d := 100 * time.Millisecond
	for range 100 {
		j := jitter(d, 0.2)
		if j < -20*time.Millisecond || j > 20*time.Millisecond {
			t.Fatalf("jitter %v outside bounds", j)
		}
	}
	if jitter(d, 0) != 0 {
		t.Fatal("zero fraction should produce zero jitter")
	}
}
