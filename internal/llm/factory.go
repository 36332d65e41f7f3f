package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/rolwijzer/internal/logging"
	"github.com/abhisek/rolwijzer/internal/store"
)

// NewProvider opens the configured backend behind the retry and logging
// decorators. Each retry attempt is logged separately. repo may be nil.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo, log *logging.Logger) (Provider, error) {
	if cfg.Provider == "mock" {
		return NewMockProvider(), nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b, _ := lookupBackend(cfg.Provider)
	cfg.Model = ResolveModel(cfg.Provider, cfg.Model)
	base, err := b.open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithRetry(WithLogging(base, repo, log), cfg.Retry), nil
}
