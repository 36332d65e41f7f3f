package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// WithRetry resends transient failures with exponential backoff. A schema
// mismatch is resent once, since a second sample often conforms.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &retryProvider{Provider: p, cfg: cfg, sleep: sleepCtx}
}

type retryProvider struct {
	Provider
	cfg   RetryConfig
	sleep func(ctx context.Context, d time.Duration) error
}

func (r *retryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.cfg.MaxAttempts, 1)
	invalidSeen := false

	for attempt := 0; ; attempt++ {
		resp, err := r.Provider.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if attempt+1 >= attempts || !transient(err) {
			return nil, err
		}

		var invalid *ErrInvalidResponse
		if errors.As(err, &invalid) {
			if invalidSeen {
				return nil, err
			}
			invalidSeen = true
		}

		if serr := r.sleep(ctx, r.cfg.wait(attempt, err)); serr != nil {
			return nil, serr
		}
	}
}

// wait is the pause before retry number attempt+1. A rate limit that names
// its own delay wins over the backoff curve.
func (c RetryConfig) wait(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	d := float64(c.InitialWait)
	for range attempt {
		d *= c.Multiplier
	}
	if c.MaxWait > 0 && d > float64(c.MaxWait) {
		d = float64(c.MaxWait)
	}
	// ±20% jitter
	d *= 0.8 + 0.4*rand.Float64()
	return time.Duration(d)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
