package llm

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Config selects one backend and its credentials.
type Config struct {
	// Provider is one of anthropic, openai, gemini, openrouter or mock.
	Provider string
	APIKey   string
	// Model is a friendly alias or a provider model ID.
	Model string
	// BaseURL overrides the backend endpoint. Gemini ignores it.
	BaseURL string
	Retry   RetryConfig
}

// RetryConfig is the backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

type backend struct {
	name         string
	envKey       string
	defaultModel string
	aliases      map[string]string
	open         func(ctx context.Context, cfg Config) (Provider, error)
}

// backends is ordered by discovery priority.
var backends = []backend{
	{
		name:         "gemini",
		envKey:       "GEMINI_API_KEY",
		defaultModel: "gemini-flash",
		aliases: map[string]string{
			"gemini-flash": "gemini-2.0-flash",
			"gemini-pro":   "gemini-2.0-pro",
		},
		open: func(ctx context.Context, cfg Config) (Provider, error) {
			return NewGeminiProvider(ctx, cfg.APIKey, cfg.Model)
		},
	},
	{
		name:         "openai",
		envKey:       "OPENAI_API_KEY",
		defaultModel: "gpt-4o-mini",
		open: func(_ context.Context, cfg Config) (Provider, error) {
			return NewOpenAIProvider(cfg.APIKey, cfg.Model, cfg.BaseURL)
		},
	},
	{
		name:         "anthropic",
		envKey:       "ANTHROPIC_API_KEY",
		defaultModel: "claude-haiku",
		aliases: map[string]string{
			"claude-sonnet": "claude-sonnet-4-20250514",
			"claude-haiku":  "claude-haiku-4-5-20251001",
		},
		open: func(_ context.Context, cfg Config) (Provider, error) {
			return NewAnthropicProvider(cfg.APIKey, cfg.Model, cfg.BaseURL)
		},
	},
	{
		name:         "openrouter",
		envKey:       "OPENROUTER_API_KEY",
		defaultModel: "google/gemini-2.0-flash-exp",
		open: func(_ context.Context, cfg Config) (Provider, error) {
			return NewOpenRouterProvider(cfg.APIKey, cfg.Model, cfg.BaseURL)
		},
	},
}

func lookupBackend(name string) (backend, bool) {
	for _, b := range backends {
		if b.name == name {
			return b, true
		}
	}
	return backend{}, false
}

// ResolveModel maps a friendly alias to the provider's model ID. Unknown
// names pass through unchanged, and an empty name picks the default.
func ResolveModel(provider, model string) string {
	b, ok := lookupBackend(provider)
	if !ok {
		return model
	}
	if model == "" {
		model = b.defaultModel
	}
	if id, ok := b.aliases[model]; ok {
		return id
	}
	return model
}

// DefaultRetry is three attempts starting at one second.
func DefaultRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Second,
		MaxWait:     10 * time.Second,
		Multiplier:  2,
	}
}

// DefaultConfig returns the settings for provider with its default model.
func DefaultConfig(provider string) Config {
	cfg := Config{Provider: provider, Retry: DefaultRetry()}
	if b, ok := lookupBackend(provider); ok {
		cfg.Model = b.defaultModel
	}
	return cfg
}

// DiscoverConfig picks the first backend whose standard API key variable is
// set, in the order GEMINI, OPENAI, ANTHROPIC, OPENROUTER.
func DiscoverConfig() (Config, bool) {
	for _, b := range backends {
		if key := os.Getenv(b.envKey); key != "" {
			cfg := DefaultConfig(b.name)
			cfg.APIKey = key
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the provider is known and has a key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	if _, ok := lookupBackend(c.Provider); !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.APIKey == "" {
		return fmt.Errorf("coach.%s.api_key is required for the %s provider", c.Provider, c.Provider)
	}
	return nil
}
