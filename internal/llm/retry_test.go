package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// retrying wraps p with a recorded, instant sleep.
func retrying(p Provider, attempts int) (*retryProvider, *[]time.Duration) {
	var waits []time.Duration
	r := &retryProvider{
		Provider: p,
		cfg: RetryConfig{
			MaxAttempts: attempts,
			InitialWait: 100 * time.Millisecond,
			MaxWait:     time.Second,
			Multiplier:  2,
		},
		sleep: func(ctx context.Context, d time.Duration) error {
			waits = append(waits, d)
			return ctx.Err()
		},
	}
	return r, &waits
}

var answered = MockResponse{Content: json.RawMessage(`{"summary":"ok"}`)}

func TestRetry_Outcomes(t *testing.T) {
	down := MockResponse{Err: &ErrProviderUnavailable{}}
	tests := []struct {
		name      string
		script    []MockResponse
		attempts  int
		wantCalls int
		wantErr   bool
	}{
		{"first try", []MockResponse{answered}, 3, 1, false},
		{"recovers", []MockResponse{down, down, answered}, 3, 3, false},
		{"gives up", []MockResponse{down, down, down, answered}, 3, 3, true},
		{"truncation is final", []MockResponse{{Err: &ErrMaxTokensExceeded{}}, answered}, 3, 1, true},
		{"invalid once", []MockResponse{{Err: &ErrInvalidResponse{}}, answered}, 3, 2, false},
		{"invalid twice", []MockResponse{{Err: &ErrInvalidResponse{}}, {Err: &ErrInvalidResponse{}}, answered}, 3, 2, true},
		{"zero attempts still tries", []MockResponse{down}, 0, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.script...)
			r, _ := retrying(mock, tt.attempts)

			_, err := r.Generate(context.Background(), Request{Prompt: "x"})
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if mock.CallCount() != tt.wantCalls {
				t.Errorf("calls = %d, want %d", mock.CallCount(), tt.wantCalls)
			}
		})
	}
}

func TestRetry_BackoffGrowsAndCaps(t *testing.T) {
	down := MockResponse{Err: &ErrProviderUnavailable{}}
	mock := NewMockProvider(down, down, down, down, down)
	r, waits := retrying(mock, 5)
	r.cfg.MaxWait = 300 * time.Millisecond

	r.Generate(context.Background(), Request{})

	if len(*waits) != 4 {
		t.Fatalf("slept %d times, want 4", len(*waits))
	}
	bounds := []struct{ lo, hi time.Duration }{
		{80 * time.Millisecond, 120 * time.Millisecond},
		{160 * time.Millisecond, 240 * time.Millisecond},
		{240 * time.Millisecond, 360 * time.Millisecond},
		{240 * time.Millisecond, 360 * time.Millisecond},
	}
	for i, w := range *waits {
		if w < bounds[i].lo || w > bounds[i].hi {
			t.Errorf("wait %d = %v, want within [%v, %v]", i, w, bounds[i].lo, bounds[i].hi)
		}
	}
}

func TestRetry_RateLimitDelay(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{RetryAfter: 7 * time.Second}}, answered)
	r, waits := retrying(mock, 3)

	if _, err := r.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(*waits) != 1 || (*waits)[0] != 7*time.Second {
		t.Errorf("waits = %v, want [7s]", *waits)
	}
}

func TestRetry_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{}}, answered)
	r, _ := retrying(mock, 3)
	r.sleep = func(context.Context, time.Duration) error {
		cancel()
		return ctx.Err()
	}

	_, err := r.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetry_ContextErrorNotRetried(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: context.DeadlineExceeded}, answered)
	r, _ := retrying(mock, 3)

	if _, err := r.Generate(context.Background(), Request{}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want DeadlineExceeded", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", mock.CallCount())
	}
}

func TestSleepCtx(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleepCtx(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("sleepCtx on cancelled ctx = %v", err)
	}
	if err := sleepCtx(context.Background(), time.Millisecond); err != nil {
		t.Errorf("sleepCtx = %v, want nil", err)
	}
}
