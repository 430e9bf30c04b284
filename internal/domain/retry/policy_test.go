package retry_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/namestorm/server/internal/domain/retry"
)

func TestPolicy_CalculateDelay(t *testing.T) {
	policy := retry.Policy{
		MaxRetries:   3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     300 * time.Millisecond,
	}

	tests := []struct {
		name     string
		attempt  int
		expected time.Duration
	}{
		{"attempt zero", 0, 0},
		{"first attempt", 1, 100 * time.Millisecond},
		{"second attempt doubles", 2, 200 * time.Millisecond},
		{"capped at max delay", 4, 300 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.CalculateDelay(tt.attempt); got != tt.expected {
				t.Errorf("CalculateDelay(%d) = %v, want %v", tt.attempt, got, tt.expected)
			}
		})
	}
}

func TestPolicy_CalculateDelay_JitterStaysInBounds(t *testing.T) {
	policy := retry.Policy{
		MaxRetries:   3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     1 * time.Second,
		JitterFactor: 0.25,
	}

	for i := 0; i < 50; i++ {
		got := policy.CalculateDelay(1)
		if got < 75*time.Millisecond || got > 125*time.Millisecond {
			t.Fatalf("jittered delay %v outside [75ms, 125ms]", got)
		}
	}
}

func TestIsTransient(t *testing.T) {
	base := errors.New("boom")
	if retry.IsTransient(base) {
		t.Error("plain error must not be transient")
	}
	if !retry.IsTransient(retry.Transient{Err: base}) {
		t.Error("marked error must be transient")
	}
	wrapped := fmt.Errorf("call failed: %w", retry.Transient{Err: base})
	if !retry.IsTransient(wrapped) {
		t.Error("the marker must survive wrapping")
	}
}

func TestExecuteWithResult_RetriesTransientErrors(t *testing.T) {
	policy := retry.Policy{MaxRetries: 2, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond}

	calls := 0
	got, err := retry.ExecuteWithResult(context.Background(), policy, func(_ context.Context, attempt int) (string, error) {
		calls++
		if calls < 3 {
			return "", retry.Transient{Err: errors.New("temporary")}
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" || calls != 3 {
		t.Errorf("got %q after %d calls, want ok after 3", got, calls)
	}
}

func TestExecuteWithResult_DoesNotRetryPermanentErrors(t *testing.T) {
	policy := retry.DefaultPolicy()

	calls := 0
	_, err := retry.ExecuteWithResult(context.Background(), policy, func(_ context.Context, _ int) (int, error) {
		calls++
		return 0, errors.New("bad request")
	})
	if err == nil {
		t.Fatal("expected the permanent error to surface")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want exactly 1", calls)
	}
}

func TestExecuteWithResult_ExhaustsRetries(t *testing.T) {
	policy := retry.Policy{MaxRetries: 2, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond}

	calls := 0
	_, err := retry.ExecuteWithResult(context.Background(), policy, func(_ context.Context, _ int) (int, error) {
		calls++
		return 0, retry.Transient{Err: errors.New("still down")}
	})
	if err == nil {
		t.Fatal("expected the last error to surface")
	}
	if calls != 3 {
		t.Errorf("calls = %d, want initial attempt plus 2 retries", calls)
	}
}

func TestExecuteWithResult_HonorsContextCancellation(t *testing.T) {
	policy := retry.Policy{MaxRetries: 5, InitialDelay: time.Hour, MaxDelay: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := retry.ExecuteWithResult(ctx, policy, func(_ context.Context, _ int) (int, error) {
		return 0, retry.Transient{Err: errors.New("temporary")}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
