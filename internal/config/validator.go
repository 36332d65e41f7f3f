package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "quiz.reveal_delay_ms")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidProviders returns the list of valid coach providers
func ValidProviders() []string {
	return []string{"anthropic", "openai", "gemini", "openrouter", "mock"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, c.validateQuiz()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateCoach()...)
	return errors
}

func (c *Config) validateQuiz() []ValidationError {
	var errors []ValidationError

	const maxRevealDelayMs = 60_000
	if c.Quiz.RevealDelayMs < 0 || c.Quiz.RevealDelayMs > maxRevealDelayMs {
		errors = append(errors, ValidationError{
			Field:   "quiz.reveal_delay_ms",
			Value:   c.Quiz.RevealDelayMs,
			Message: fmt.Sprintf("must be between 0 and %d", maxRevealDelayMs),
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}

func (c *Config) validateCoach() []ValidationError {
	var errors []ValidationError

	if c.Coach.Provider != "" && !slices.Contains(ValidProviders(), c.Coach.Provider) {
		errors = append(errors, ValidationError{
			Field:   "coach.provider",
			Value:   c.Coach.Provider,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidProviders(), ", ")),
		})
	}

	if c.Coach.TimeoutSeconds <= 0 {
		errors = append(errors, ValidationError{
			Field:   "coach.timeout_seconds",
			Value:   c.Coach.TimeoutSeconds,
			Message: "must be positive",
		})
	}

	if c.Coach.MaxTokens <= 0 {
		errors = append(errors, ValidationError{
			Field:   "coach.max_tokens",
			Value:   c.Coach.MaxTokens,
			Message: "must be positive",
		})
	}

	return errors
}
