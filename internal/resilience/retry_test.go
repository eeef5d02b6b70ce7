package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errConflict = errors.New("version conflict")

func isConflict(err error) bool { return errors.Is(err, errConflict) }

func TestRetryConflicts_SucceedsAfterConflict(t *testing.T) {
	attempts := 0
	err := RetryConflicts(context.Background(), 3, isConflict, func(ctx context.Context) error {
		attempts++
		if attempts < 2 {
			return errConflict
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RetryConflicts() error = %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}

func TestRetryConflicts_GivesUpAfterMaxAttempts(t *testing.T) {
	attempts := 0
	err := RetryConflicts(context.Background(), 3, isConflict, func(ctx context.Context) error {
		attempts++
		return errConflict
	})
	if !errors.Is(err, errConflict) {
		t.Errorf("RetryConflicts() error = %v, want the conflict", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestRetryConflicts_NonRetryableReturnsImmediately(t *testing.T) {
	boom := errors.New("boom")
	attempts := 0
	err := RetryConflicts(context.Background(), 3, isConflict, func(ctx context.Context) error {
		attempts++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("RetryConflicts() error = %v", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestRetryConflicts_HonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryConflicts(ctx, 3, isConflict, func(ctx context.Context) error {
		t.Fatal("fn ran with cancelled context")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RetryConflicts() error = %v, want context.Canceled", err)
	}
}

func TestBackoff_DelayGrowsAndCaps(t *testing.T) {
	b := Backoff{Initial: time.Second, Max: 8 * time.Second, Multiplier: 2.0}

	if got := b.Delay(1); got != time.Second {
		t.Errorf("Delay(1) = %v", got)
	}
	if got := b.Delay(3); got != 4*time.Second {
		t.Errorf("Delay(3) = %v", got)
	}
	if got := b.Delay(10); got != 8*time.Second {
		t.Errorf("Delay(10) = %v, want the cap", got)
	}
	if got := b.Delay(0); got != time.Second {
		t.Errorf("Delay(0) = %v, want clamped to first attempt", got)
	}
}

func TestBackoff_JitterStaysWithinSpread(t *testing.T) {
	b := DefaultBackoff()
	for attempt := 1; attempt <= 6; attempt++ {
		delay := b.Delay(attempt)
		if delay <= 0 {
			t.Errorf("Delay(%d) = %v, want positive", attempt, delay)
		}
		if delay > b.Max {
			t.Errorf("Delay(%d) = %v exceeds max %v", attempt, delay, b.Max)
		}
	}
}
