package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestBreaker(threshold int, cooldown time.Duration, probes int) (*Breaker, *time.Time) {
	b := NewBreaker("store", BreakerConfig{
		Enabled:          true,
		FailureThreshold: threshold,
		OpenTimeout:      cooldown,
		HalfOpenMaxReq:   probes,
	})
	now := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestBreaker_Transitions(t *testing.T) {
	t.Parallel()

	b, now := newTestBreaker(2, 5*time.Second, 1)
	var changes []State
	b.OnStateChange(func(_ string, _, to State) { changes = append(changes, to) })

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.Failure()
	if state := b.State(); state != StateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}
	b.Failure()
	if state := b.State(); state != StateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	*now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected second probe to be rejected, got %v", err)
	}

	b.Success()
	if state := b.State(); state != StateClosed {
		t.Fatalf("expected closed after successful probe, got %s", state)
	}

	want := []State{StateOpen, StateHalfOpen, StateClosed}
	if len(changes) != len(want) {
		t.Fatalf("state changes got %v want %v", changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Fatalf("state changes got %v want %v", changes, want)
		}
	}
}

func TestBreaker_DoCountsFailures(t *testing.T) {
	t.Parallel()

	b, _ := newTestBreaker(1, time.Minute, 1)
	boom := errors.New("boom")

	if err := b.Do(context.Background(), func(context.Context) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	called := false
	err := b.Do(context.Background(), func(context.Context) error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrCircuitOpen) || called {
		t.Fatalf("expected open breaker to short-circuit, err=%v called=%v", err, called)
	}
}

func TestBreaker_DoIgnoresCallerCancellation(t *testing.T) {
	t.Parallel()

	b, _ := newTestBreaker(1, time.Minute, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_ = b.Do(ctx, func(ctx context.Context) error { return ctx.Err() })
	if state := b.State(); state != StateClosed {
		t.Fatalf("cancellation must not open the breaker, got %s", state)
	}
}

func TestBreaker_Disabled(t *testing.T) {
	t.Parallel()

	b := NewBreaker("off", BreakerConfig{Enabled: false, FailureThreshold: 1})
	for i := 0; i < 3; i++ {
		_ = b.Do(context.Background(), func(context.Context) error { return errors.New("fail") })
	}
	if err := b.Do(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatalf("disabled breaker must pass calls through, got %v", err)
	}
}
