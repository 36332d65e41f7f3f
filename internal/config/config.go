package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete Rolwijzer configuration
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Store   StoreConfig   `mapstructure:"store"`
	Quiz    QuizConfig    `mapstructure:"quiz"`
	Logging LoggingConfig `mapstructure:"logging"`
	Coach   CoachConfig   `mapstructure:"coach"`
}

// CatalogConfig selects the role catalogue
type CatalogConfig struct {
	// Path to a YAML catalogue. Empty uses the built-in roles.
	Path string `mapstructure:"path"`
}

// StoreConfig controls the portfolio export database
type StoreConfig struct {
	// Path to the SQLite file. Empty resolves ROLWIJZER_DB or the XDG data dir.
	Path string `mapstructure:"path"`
	// Export copies every completed situation to the database
	Export bool `mapstructure:"export"`
}

// QuizConfig controls the flashcard quiz
type QuizConfig struct {
	// RevealDelayMs is how long an answered card stays visible
	RevealDelayMs int `mapstructure:"reveal_delay_ms"`
}

// LoggingConfig controls the debug log file
type LoggingConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Level is one of debug, info, warn, error
	Level string `mapstructure:"level"`
	// File overrides the default $XDG_STATE_HOME/rolwijzer/rolwijzer.log
	File string `mapstructure:"file"`
}

// CoachConfig controls optional LLM feedback on reflections
type CoachConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Provider is one of anthropic, openai, gemini, openrouter.
	// Empty picks the first provider with a standard API key in the environment.
	Provider       string         `mapstructure:"provider"`
	Anthropic      ProviderConfig `mapstructure:"anthropic"`
	OpenAI         ProviderConfig `mapstructure:"openai"`
	Gemini         ProviderConfig `mapstructure:"gemini"`
	OpenRouter     ProviderConfig `mapstructure:"openrouter"`
	TimeoutSeconds int            `mapstructure:"timeout_seconds"`
	MaxTokens      int            `mapstructure:"max_tokens"`
}

// ProviderConfig holds credentials and model for one LLM provider
type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Export: true,
		},
		Quiz: QuizConfig{
			RevealDelayMs: 2000,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
		Coach: CoachConfig{
			Enabled:        true,
			TimeoutSeconds: 30,
			MaxTokens:      1024,
		},
	}
}

// RevealDelay returns the quiz reveal delay as a time.Duration
func (c *QuizConfig) RevealDelay() time.Duration {
	return time.Duration(c.RevealDelayMs) * time.Millisecond
}

// For returns the settings of the named provider, or the zero value for an
// unknown name
func (c *CoachConfig) For(provider string) ProviderConfig {
	switch provider {
	case "anthropic":
		return c.Anthropic
	case "openai":
		return c.OpenAI
	case "gemini":
		return c.Gemini
	case "openrouter":
		return c.OpenRouter
	}
	return ProviderConfig{}
}

// Timeout returns the coach request timeout as a time.Duration
func (c *CoachConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("catalog.path", defaults.Catalog.Path)

	viper.SetDefault("store.path", defaults.Store.Path)
	viper.SetDefault("store.export", defaults.Store.Export)

	viper.SetDefault("quiz.reveal_delay_ms", defaults.Quiz.RevealDelayMs)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)

	viper.SetDefault("coach.enabled", defaults.Coach.Enabled)
	viper.SetDefault("coach.provider", defaults.Coach.Provider)
	viper.SetDefault("coach.timeout_seconds", defaults.Coach.TimeoutSeconds)
	viper.SetDefault("coach.max_tokens", defaults.Coach.MaxTokens)
	for _, p := range []string{"anthropic", "openai", "gemini", "openrouter"} {
		viper.SetDefault("coach."+p+".api_key", "")
		viper.SetDefault("coach."+p+".model", "")
		viper.SetDefault("coach."+p+".base_url", "")
	}
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "rolwijzer")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rolwijzer"
	}
	return filepath.Join(home, ".config", "rolwijzer")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// StateDir returns the directory for logs and other runtime state
func StateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "rolwijzer")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rolwijzer"
	}
	return filepath.Join(home, ".local", "state", "rolwijzer")
}

// LogFile returns the configured log file path or the default one
func (c *LoggingConfig) LogFile() string {
	if c.File != "" {
		return c.File
	}
	return filepath.Join(StateDir(), "rolwijzer.log")
}
