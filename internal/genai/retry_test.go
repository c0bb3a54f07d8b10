package genai

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCalculateBackoff(t *testing.T) {
	initial := 500 * time.Millisecond
	max := 3 * time.Second

	t.Run("zero attempt has no delay", func(t *testing.T) {
		if got := CalculateBackoff(0, initial, max); got != 0 {
			t.Errorf("CalculateBackoff(0) = %v, want 0", got)
		}
	})

	t.Run("jitter stays within exponential bound", func(t *testing.T) {
		for attempt := 1; attempt <= 5; attempt++ {
			for i := 0; i < 20; i++ {
				got := CalculateBackoff(attempt, initial, max)
				if got < 0 {
					t.Fatalf("attempt %d: negative backoff %v", attempt, got)
				}
				if got > max {
					t.Fatalf("attempt %d: backoff %v exceeds cap %v", attempt, got, max)
				}
			}
		}
	})

	t.Run("early attempts stay below the cap", func(t *testing.T) {
		// attempt 1 bound is initial itself
		for i := 0; i < 20; i++ {
			if got := CalculateBackoff(1, initial, max); got > initial {
				t.Fatalf("attempt 1 backoff %v exceeds %v", got, initial)
			}
		}
	})
}

func TestSleep(t *testing.T) {
	t.Run("returns immediately for non-positive duration", func(t *testing.T) {
		if err := Sleep(context.Background(), 0); err != nil {
			t.Errorf("Sleep(0) = %v, want nil", err)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := Sleep(ctx, time.Minute)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Sleep on cancelled context = %v, want context.Canceled", err)
		}
	})
}

func TestWithRetry(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}

	t.Run("succeeds on first attempt", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), cfg, func() error {
			calls++
			return nil
		})
		if err != nil {
			t.Errorf("WithRetry = %v, want nil", err)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("retries transient errors", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), cfg, func() error {
			calls++
			if calls < 3 {
				return errors.New("503 service temporarily unavailable")
			}
			return nil
		})
		if err != nil {
			t.Errorf("WithRetry = %v, want nil", err)
		}
		if calls != 3 {
			t.Errorf("calls = %d, want 3", calls)
		}
	})

	t.Run("stops on permanent error", func(t *testing.T) {
		calls := 0
		permErr := errors.New("401 unauthorized")
		err := WithRetry(context.Background(), cfg, func() error {
			calls++
			return permErr
		})
		if !errors.Is(err, permErr) {
			t.Errorf("WithRetry = %v, want %v", err, permErr)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1 (no retry on permanent error)", calls)
		}
	})

	t.Run("exhausts attempts", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), cfg, func() error {
			calls++
			return errors.New("connection reset")
		})
		if err == nil {
			t.Error("WithRetry = nil, want error after exhausting attempts")
		}
		if calls != cfg.MaxAttempts {
			t.Errorf("calls = %d, want %d", calls, cfg.MaxAttempts)
		}
	})
}

func TestHasSufficientBudget(t *testing.T) {
	t.Run("no deadline means unlimited", func(t *testing.T) {
		if !HasSufficientBudget(context.Background(), time.Hour) {
			t.Error("context without deadline should always have budget")
		}
	})

	t.Run("detects exhausted budget", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		if HasSufficientBudget(ctx, time.Minute) {
			t.Error("10ms budget should not cover a minute")
		}
	})

	t.Run("accepts fitting budget", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if !HasSufficientBudget(ctx, time.Millisecond) {
			t.Error("minute budget should cover a millisecond")
		}
	})
}
