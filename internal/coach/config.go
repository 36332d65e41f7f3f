package coach

import (
	"github.com/abhisek/rolwijzer/internal/config"
	"github.com/abhisek/rolwijzer/internal/llm"
)

// Config holds tunable parameters for reflection reviews.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the default coach configuration.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.3,
	}
}

// LLMConfig translates the user's coach settings into an llm.Config.
// An empty provider falls back to llm.DiscoverConfig. ok is false when the
// coach is disabled or the chosen provider has no key.
func LLMConfig(cc config.CoachConfig) (cfg llm.Config, ok bool) {
	if !cc.Enabled {
		return llm.Config{}, false
	}

	if cc.Provider == "" {
		if cfg, ok = llm.DiscoverConfig(); !ok {
			return llm.Config{}, false
		}
	} else {
		cfg = llm.DefaultConfig(cc.Provider)
	}

	pc := cc.For(cfg.Provider)
	if pc.APIKey != "" {
		cfg.APIKey = pc.APIKey
	}
	if pc.Model != "" {
		cfg.Model = pc.Model
	}
	cfg.BaseURL = pc.BaseURL

	if err := cfg.Validate(); err != nil {
		return llm.Config{}, false
	}
	return cfg, true
}
